package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/versionforge/pkg/compat"
	"github.com/matzehuels/versionforge/pkg/errors"
)

// matrixCommand creates the matrix command group.
func (c *CLI) matrixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Inspect and persist compatibility matrices",
		Long: `Matrix commands read compatibility pairs from a manifest or from the stored
matrix. The stored matrix lives in the configured cache backend (file or
redis) under the [matrix] key from the config file.`,
	}

	cmd.AddCommand(c.matrixReportCommand())
	cmd.AddCommand(c.matrixShowCommand())
	cmd.AddCommand(c.matrixImportCommand())
	cmd.AddCommand(c.matrixExportCommand())
	cmd.AddCommand(c.matrixDeleteCommand())

	return cmd
}

// sourceMatrix returns the matrix of the manifest named in args, or the
// stored matrix when args is empty.
func (c *CLI) sourceMatrix(cmd *cobra.Command, args []string) (*compat.Matrix, error) {
	ctx := cmd.Context()
	if len(args) == 1 {
		eco, err := c.loadEcosystem(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return eco.matrix, nil
	}

	store, backend, err := c.matrixStore(ctx)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	m, found, err := store.Load(ctx, c.Config.Matrix.Key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New(errors.ErrCodeNotFound, "no stored matrix %q; run 'versionforge matrix import' first", c.Config.Matrix.Key)
	}
	return m, nil
}

func (c *CLI) matrixReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report [manifest]",
		Short: "Print the full compatibility report as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.sourceMatrix(cmd, args)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(m.Report(), "", "  ")
			if err != nil {
				return err
			}
			printRaw(string(data))
			return nil
		},
	}
}

func (c *CLI) matrixShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [manifest]",
		Short: "Print the matrix as a grid of pair counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.sourceMatrix(cmd, args)
			if err != nil {
				return err
			}
			printRaw(m.ASCII())
			return nil
		},
	}
}

func (c *CLI) matrixImportCommand() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <manifest>",
		Short: "Merge a manifest's compatibility pairs into the stored matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := c.readManifest(ctx, args[0])
			if err != nil {
				return err
			}

			store, backend, err := c.matrixStore(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			key := c.Config.Matrix.Key
			stored := compat.New(compat.WithLogger(c.Logger))
			if !replace {
				if stored, _, err = store.Load(ctx, key); err != nil {
					return err
				}
			}
			m.Apply(nil, stored, nil)

			if err := store.Save(ctx, key, stored); err != nil {
				return err
			}
			printSuccess("Stored matrix %s", StyleHighlight.Render(key))
			printDetail("%d components, %d pairs imported", len(m.Components), len(m.Compatibility))
			printNextStep("Show it", "versionforge matrix show")
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "replace the stored matrix instead of merging")
	return cmd
}

func (c *CLI) matrixExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [manifest]",
		Short: "Write the matrix as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.sourceMatrix(cmd, args)
			if err != nil {
				return err
			}
			data, err := m.ToJSON()
			if err != nil {
				return err
			}
			if output == "" {
				printRaw(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
			}
			printSuccess("Exported matrix")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (c *CLI) matrixDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, backend, err := c.matrixStore(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			if err := store.Delete(ctx, c.Config.Matrix.Key); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "delete matrix")
			}
			printSuccess("Deleted matrix %s", c.Config.Matrix.Key)
			return nil
		},
	}
}
