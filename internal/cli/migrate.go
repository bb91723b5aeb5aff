package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/versionforge/pkg/migration"
	"github.com/matzehuels/versionforge/pkg/observability"
)

// migrateCommand creates the migrate command.
func (c *CLI) migrateCommand() *cobra.Command {
	var (
		manifest string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "migrate <component> <from> <to>",
		Short: "Generate a migration guide between two versions",
		Long: `Migrate prints the upgrade type, an effort estimate and suggestions for moving
a component from one version to another. With --manifest, curated breaking
changes, new features and deprecations declared in the manifest are included.`,
		Example: `  versionforge migrate api 1.0.0 2.0.0
  versionforge migrate api 1.0.0 2.0.0 --manifest ecosystem.yaml --json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, from, to := args[0], args[1], args[2]

			gen := migration.New(migration.WithLogger(c.Logger))
			if manifest != "" {
				eco, err := c.loadEcosystem(ctx, manifest)
				if err != nil {
					return err
				}
				gen = eco.guides
			}

			guide := gen.Guide(name, from, to)
			observability.Engine().OnGuide(ctx, string(guide.UpgradeType), string(guide.EstimatedEffort))

			if asJSON {
				data, err := json.MarshalIndent(guide, "", "  ")
				if err != nil {
					return err
				}
				printRaw(string(data))
				return nil
			}
			printGuide(guide)
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "manifest with curated migration notes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the guide as JSON")
	return cmd
}

func printGuide(g migration.Guide) {
	printRaw(StyleTitle.Render("Migration Guide: " + g.Component))
	printKeyValue("From", g.FromVersion)
	printKeyValue("To", g.ToVersion)
	printKeyValue("Type", strings.ToUpper(string(g.UpgradeType)))
	printKeyValue("Effort", strings.ToUpper(string(g.EstimatedEffort)))
	if g.Delta.Known() {
		printKeyValue("Delta", g.Delta.Describe())
	}
	for _, s := range g.Sections() {
		printSection(s.Title, s.Items)
	}
}
