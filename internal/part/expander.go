package part

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hdlforge/bob/internal/constants"
	"github.com/hdlforge/bob/internal/domain"
	boberrors "github.com/hdlforge/bob/internal/errors"
)

// placeholderPattern matches {name} placeholders in command templates.
// Package-level compiled regex, immutable after init.
var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// Expander resolves part invocations against the registry to produce a
// BuildPlan.
//
// Substitution joins a template's tokens with single spaces, replaces
// placeholders, then re-splits on single spaces. A parameter value that
// contains a space therefore splits into multiple tokens. That is the
// documented substitution model, not a bug: values intended as one token
// must not contain spaces.
type Expander struct {
	workDir string
	logger  zerolog.Logger
}

// NewExpander creates an expander. workDir supplies the implicit {_pwd}
// placeholder value.
func NewExpander(workDir string, logger zerolog.Logger) *Expander {
	return &Expander{
		workDir: workDir,
		logger:  logger,
	}
}

// Expand builds the complete BuildPlan for a specification.
//
// Projects, run groups, part invocations, and command templates are all
// processed in declaration order, so expanding the same specification twice
// yields identical plans. Any unknown part type or unresolved placeholder
// aborts the whole expansion: configuration errors surface before a single
// command runs.
func (e *Expander) Expand(spec *domain.Spec, reg *Registry) (*domain.BuildPlan, error) {
	plan := &domain.BuildPlan{
		Projects: make([]domain.ProjectPlan, 0, len(spec.Projects)),
	}

	for _, project := range spec.Projects {
		projectPlan := domain.ProjectPlan{
			Project: project.Name,
			Groups:  make([]domain.GroupPlan, 0, len(project.Groups)),
		}

		for _, group := range project.Groups {
			groupPlan := domain.GroupPlan{
				Kind:  group.Kind,
				Parts: make([]domain.PartCommands, 0, len(group.Parts)),
			}

			for _, inv := range group.Parts {
				commands, err := e.expandInvocation(project.Name, inv, reg)
				if err != nil {
					return nil, boberrors.Wrapf(err, "project %s", project.Name)
				}
				groupPlan.Parts = append(groupPlan.Parts, commands)
			}

			projectPlan.Groups = append(projectPlan.Groups, groupPlan)
		}

		plan.Projects = append(plan.Projects, projectPlan)
		e.logger.Info().Str("project", project.Name).Msg("added commands for project")
	}

	return plan, nil
}

// expandInvocation expands every command template of one part invocation.
func (e *Expander) expandInvocation(projectName string, inv domain.PartInvocation, reg *Registry) (domain.PartCommands, error) {
	tmpl, err := reg.Lookup(inv.Part)
	if err != nil {
		return nil, err
	}

	params := e.mergeParams(projectName, inv.Params)

	commands := make(domain.PartCommands, 0, len(tmpl.Commands))
	for _, cmdTemplate := range tmpl.Commands {
		cmd, err := substitute(cmdTemplate, params)
		if err != nil {
			return nil, boberrors.Wrapf(err, "part %s", inv.Part)
		}
		commands = append(commands, cmd)
		e.logger.Debug().Strs("command", cmd).Msg("expanded command")
	}

	return commands, nil
}

// mergeParams copies the invocation's explicit parameters and injects the
// two implicit values. The implicit keys always win; every other explicit
// value is left untouched.
func (e *Expander) mergeParams(projectName string, explicit map[string]string) map[string]string {
	merged := make(map[string]string, len(explicit)+2)
	for k, v := range explicit {
		merged[k] = v
	}
	merged[constants.PlaceholderProjectName] = projectName
	merged[constants.PlaceholderWorkDir] = e.workDir
	return merged
}

// substitute joins template tokens with single spaces, replaces every
// {name} placeholder from params, and re-splits on single spaces.
// A placeholder with no corresponding parameter is a fatal expansion error.
func substitute(tmpl domain.CommandTemplate, params map[string]string) (domain.ExpandedCommand, error) {
	joined := strings.Join(tmpl, " ")

	var missing string
	resolved := placeholderPattern.ReplaceAllStringFunc(joined, func(match string) string {
		name := strings.Trim(match, "{}")
		if val, ok := params[name]; ok {
			return val
		}
		if missing == "" {
			missing = name
		}
		return match
	})

	if missing != "" {
		return nil, fmt.Errorf("%w: {%s}", boberrors.ErrUnresolvedPlaceholder, missing)
	}

	return domain.ExpandedCommand(strings.Split(resolved, " ")), nil
}
