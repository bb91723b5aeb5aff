package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/versionforge/pkg/errors"
	vfio "github.com/matzehuels/versionforge/pkg/io"
)

// sampleManifest is the ecosystem written by the init command.
func sampleManifest() *vfio.Manifest {
	return &vfio.Manifest{
		Components: []vfio.Component{
			{Name: "ui", Version: "3.0.0", MinVersion: "2.0.0", DependsOn: []string{"api"}},
			{Name: "api", Version: "2.1.0", MinVersion: "1.4.0", DependsOn: []string{"core"}},
			{Name: "core", Version: "1.4.2", Metadata: map[string]string{"owner": "platform"}},
		},
		Compatibility: []vfio.Compatibility{
			{Component: "api", Version: "2.1.0", With: "core", WithVersion: "1.4.0"},
			{Component: "ui", Version: "3.0.0", With: "api", WithVersion: "2.0.0"},
		},
		Migrations: []vfio.Migration{
			{
				Component:       "api",
				From:            "1.0.0",
				To:              "2.0.0",
				BreakingChanges: []string{"Removed /v0 routes"},
				NewFeatures:     []string{"Rate limiting"},
			},
		},
	}
}

// initCommand creates the init command.
func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [manifest]",
		Short: "Write a sample ecosystem manifest",
		Long: `Init writes a small three-component ecosystem to the given path
(default ecosystem.yaml). The format follows the file extension.`,
		Example: `  versionforge init
  versionforge init platform.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "ecosystem.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := errors.ValidateManifestPath(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := vfio.Export(path, sampleManifest()); err != nil {
				return err
			}
			printSuccess("Created manifest")
			printFile(path)
			printNextStep("Validate it", "versionforge validate "+path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
