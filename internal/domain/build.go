// Package domain provides shared domain types for the bob build orchestrator.
package domain

// RunGroupKind categorizes how the part invocations of a run group are
// scheduled relative to each other.
type RunGroupKind string

// Run group kind constants define the valid scheduling disciplines.
// Any other kind found in a specification is accepted but skipped with a
// warning at execution time.
const (
	// RunGroupConcurrent schedules every part's command list as an
	// independent concurrent task and joins them before proceeding.
	RunGroupConcurrent RunGroupKind = "concurrent"

	// RunGroupSequential runs part command lists one at a time in declared
	// order, stopping at the first failure.
	RunGroupSequential RunGroupKind = "sequential"
)

// String returns the string representation of the RunGroupKind.
func (k RunGroupKind) String() string {
	return string(k)
}

// Known reports whether the kind is one of the recognized scheduling
// disciplines.
func (k RunGroupKind) Known() bool {
	return k == RunGroupConcurrent || k == RunGroupSequential
}

// CommandTemplate is one external command before parameter substitution: an
// ordered list of string tokens, some containing {name} placeholders.
type CommandTemplate []string

// PartTemplate defines the ordered command templates generated by one part
// type (for example fusesoc or buildroot). Immutable after registration.
type PartTemplate struct {
	// Name is the part type identity used in project specifications.
	Name string

	// Commands are the templates expanded for every invocation of this
	// part, in declaration order.
	Commands []CommandTemplate
}

// Clone returns a deep copy of the part template so registry state cannot be
// mutated through returned values.
func (p *PartTemplate) Clone() *PartTemplate {
	clone := &PartTemplate{Name: p.Name}
	if len(p.Commands) > 0 {
		clone.Commands = make([]CommandTemplate, len(p.Commands))
		for i, cmd := range p.Commands {
			clone.Commands[i] = make(CommandTemplate, len(cmd))
			copy(clone.Commands[i], cmd)
		}
	}
	return clone
}

// PartInvocation is one use of a part type inside a project, carrying the
// literal values substituted into the part's command templates.
type PartInvocation struct {
	// Part is the part type name, resolved against the registry.
	Part string

	// Params maps placeholder names to literal values.
	Params map[string]string
}

// RunGroup is an ordered list of part invocations sharing one scheduling
// discipline.
type RunGroup struct {
	Kind  RunGroupKind
	Parts []PartInvocation
}

// ProjectSpec is one project's declared run groups, in declaration order.
type ProjectSpec struct {
	Name   string
	Groups []RunGroup
}

// Spec is the full project-keyed build specification. Project order is the
// declaration order of the input document; it is the only inter-project
// ordering bob honors.
type Spec struct {
	Projects []ProjectSpec
}

// Project returns the named project spec, or nil if it is not declared.
func (s *Spec) Project(name string) *ProjectSpec {
	for i := range s.Projects {
		if s.Projects[i].Name == name {
			return &s.Projects[i]
		}
	}
	return nil
}

// ExpandedCommand is a fully substituted command line ready for execution:
// an ordered list of tokens with no remaining placeholders.
type ExpandedCommand []string

// PartCommands is the ordered command list produced by expanding one part
// invocation. Commands within the list always execute strictly in order,
// even when the enclosing run group is concurrent.
type PartCommands []ExpandedCommand

// GroupPlan is the expanded form of one run group.
type GroupPlan struct {
	Kind  RunGroupKind
	Parts []PartCommands
}

// ProjectPlan is the expanded form of one project.
type ProjectPlan struct {
	Project string
	Groups  []GroupPlan
}

// BuildPlan is the fully expanded, ready-to-execute representation of all
// projects' commands. Built once by the expander and consumed read-only by
// the execution engine.
type BuildPlan struct {
	Projects []ProjectPlan
}

// CommandCount returns the total number of commands the engine will run:
// the progress denominator. Groups with unknown kinds are excluded because
// the engine skips them.
func (p *BuildPlan) CommandCount() int {
	count := 0
	for _, project := range p.Projects {
		for _, group := range project.Groups {
			if !group.Kind.Known() {
				continue
			}
			for _, part := range group.Parts {
				count += len(part)
			}
		}
	}
	return count
}
