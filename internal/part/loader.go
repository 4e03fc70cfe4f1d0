package part

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hdlforge/bob/internal/domain"
	boberrors "github.com/hdlforge/bob/internal/errors"
)

// filePart is the YAML shape of one part in a custom parts file:
// a part type name mapped to an ordered list of command token lists.
//
//	script2:
//	  - ["bash", "{file}", "{_project_name}"]
//	  - ["rm", "-f", "{file}.lock"]
type filePart map[string][][]string

// LoadFile merges part templates from a YAML file into the registry.
// File entries replace built-in parts with the same name; built-ins not
// mentioned in the file are kept.
func LoadFile(reg *Registry, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from user config
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", boberrors.ErrPartsFileMissing, path)
		}
		return boberrors.Wrapf(err, "reading parts file %s", path)
	}

	var parts filePart
	if err := yaml.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: %w", boberrors.ErrPartsFileParse, err)
	}

	for name, commands := range parts {
		tmpl := &domain.PartTemplate{Name: name}
		for _, tokens := range commands {
			tmpl.Commands = append(tmpl.Commands, domain.CommandTemplate(tokens))
		}
		if err := reg.RegisterOrReplace(tmpl); err != nil {
			return boberrors.Wrapf(err, "parts file %s", path)
		}
	}

	return nil
}
