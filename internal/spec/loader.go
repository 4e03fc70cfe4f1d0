// Package spec loads the project-keyed build specification consumed by the
// expander and execution engine.
//
// A specification maps project names to run groups, each run group holding an
// ordered list of part invocations:
//
//	zed_blinky:
//	  concurrent:
//	    - fusesoc: {path: cores, target: zed_blinky, project: "::blinky:1.0.0"}
//	  sequential:
//	    - buildroot:
//	        path: buildroot
//	        config: zynq_zed_defconfig
//
// Declaration order matters everywhere: projects build in document order,
// and parts within a run group keep their declared order. Decoding therefore
// walks yaml.Node values instead of unmarshaling into Go maps, which would
// lose ordering.
package spec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hdlforge/bob/internal/domain"
	boberrors "github.com/hdlforge/bob/internal/errors"
)

// Load reads and parses a specification file.
func Load(path string) (*domain.Spec, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the CLI invocation
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", boberrors.ErrSpecFileMissing, path)
		}
		return nil, boberrors.Wrapf(err, "reading spec file %s", path)
	}
	return Parse(data)
}

// Parse parses specification bytes.
func Parse(data []byte) (*domain.Spec, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", boberrors.ErrSpecParse, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", boberrors.ErrSpecEmpty)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must map project names to run groups", boberrors.ErrSpecParse)
	}

	result := &domain.Spec{}
	for i := 0; i < len(root.Content); i += 2 {
		name := root.Content[i].Value
		project, err := parseProject(name, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		result.Projects = append(result.Projects, project)
	}

	if len(result.Projects) == 0 {
		return nil, boberrors.ErrSpecEmpty
	}
	return result, nil
}

// parseProject decodes one project's run groups in declaration order.
func parseProject(name string, node *yaml.Node) (domain.ProjectSpec, error) {
	project := domain.ProjectSpec{Name: name}

	if node.Kind != yaml.MappingNode {
		return project, fmt.Errorf("%w: project %s must map run group kinds to part lists", boberrors.ErrSpecParse, name)
	}

	for i := 0; i < len(node.Content); i += 2 {
		kind := domain.RunGroupKind(node.Content[i].Value)
		parts, err := parseParts(name, node.Content[i+1])
		if err != nil {
			return project, err
		}
		project.Groups = append(project.Groups, domain.RunGroup{Kind: kind, Parts: parts})
	}

	return project, nil
}

// parseParts decodes a run group's ordered part invocations. Each list entry
// is a single-key mapping from part type to a parameter map.
func parseParts(project string, node *yaml.Node) ([]domain.PartInvocation, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: project %s run groups must hold part lists", boberrors.ErrSpecParse, project)
	}

	parts := make([]domain.PartInvocation, 0, len(node.Content))
	for _, entry := range node.Content {
		if entry.Kind != yaml.MappingNode || len(entry.Content) != 2 {
			return nil, fmt.Errorf("%w: project %s part entries must be single-key mappings", boberrors.ErrSpecParse, project)
		}

		inv := domain.PartInvocation{Part: entry.Content[0].Value}
		if err := entry.Content[1].Decode(&inv.Params); err != nil {
			return nil, fmt.Errorf("%w: project %s part %s parameters: %w", boberrors.ErrSpecParse, project, inv.Part, err)
		}
		parts = append(parts, inv)
	}

	return parts, nil
}

// Select restricts a specification to exactly one named project. An empty
// name returns the specification unchanged. Selecting a project that is not
// declared is a fatal configuration error, reported before any planning.
func Select(s *domain.Spec, name string) (*domain.Spec, error) {
	if name == "" {
		return s, nil
	}

	project := s.Project(name)
	if project == nil {
		return nil, fmt.Errorf("%w: %s", boberrors.ErrInvalidSelector, name)
	}

	return &domain.Spec{Projects: []domain.ProjectSpec{*project}}, nil
}
