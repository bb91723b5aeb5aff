package cli

import (
	"github.com/spf13/cobra"

	vfio "github.com/matzehuels/versionforge/pkg/io"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a manifest between JSON, YAML and TOML",
		Long: `Convert reads a manifest and writes it back in the format implied by the
output extension. The manifest is validated on the way through.`,
		Example: `  versionforge convert ecosystem.yaml ecosystem.toml`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.readManifest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := vfio.Export(args[1], m); err != nil {
				return err
			}
			printSuccess("Converted %s", args[0])
			printFile(args[1])
			return nil
		},
	}
}
