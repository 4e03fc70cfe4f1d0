// Package cli provides the command-line interface for bob.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hdlforge/bob/internal/config"
	"github.com/hdlforge/bob/internal/ctxutil"
	"github.com/hdlforge/bob/internal/part"
	"github.com/hdlforge/bob/internal/progress"
)

// partInfo is the JSON shape for one part type in parts output.
type partInfo struct {
	Name         string   `json:"name"`
	Placeholders []string `json:"placeholders"`
}

// AddPartsCommand adds the parts command to the root command.
func AddPartsCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newPartsCmd(flags))
}

func newPartsCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parts",
		Short: "List the known part types and their placeholders",
		Long: `List every part type bob can build and the placeholder names its
command templates expect as parameters in a project specification.

Custom part templates configured via parts.file are included.

Examples:
  bob parts
  bob parts --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runParts(cmd.Context(), flags, os.Stdout)
		},
	}
}

// runParts prints each registered part type with the placeholder names a
// specification must supply for it.
func runParts(ctx context.Context, flags *GlobalFlags, w io.Writer) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	logger := GetLogger()
	progress.CheckNoColor()

	cfg, err := config.Load(logger.WithContext(ctx))
	if err != nil {
		return err
	}

	registry := part.DefaultRegistry()
	if cfg.Parts.File != "" {
		if err := part.LoadFile(registry, cfg.Parts.File); err != nil {
			return err
		}
	}

	placeholders := registry.Placeholders()
	infos := make([]partInfo, 0, len(placeholders))
	for _, name := range registry.Types() {
		infos = append(infos, partInfo{
			Name:         name,
			Placeholders: placeholders[name],
		})
	}

	out := progress.NewOutput(w, flags.Output)
	if flags.Output == OutputJSON {
		return out.JSON(infos)
	}

	for _, info := range infos {
		if len(info.Placeholders) == 0 {
			out.Info(info.Name)
			continue
		}
		out.Info(fmt.Sprintf("%s: %s", info.Name, strings.Join(info.Placeholders, ", ")))
	}
	return nil
}
