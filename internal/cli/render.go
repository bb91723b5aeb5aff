package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/versionforge/pkg/dag/transform"
	"github.com/matzehuels/versionforge/pkg/errors"
	"github.com/matzehuels/versionforge/pkg/render/nodelink"
)

// Output formats of the render command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		matrix   bool
		format   string
		output   string
		reduce   bool
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "render <manifest>",
		Short: "Draw the dependency graph or compatibility matrix",
		Long: `Render draws the manifest's dependency graph, or with --matrix its
compatibility matrix, as Graphviz DOT, SVG or PNG.

--reduce removes dependency edges implied by longer paths. On a cyclic
graph the edges closing each cycle are left out of the reduction and
reported.`,
		Example: `  versionforge render ecosystem.yaml -o deps.svg
  versionforge render ecosystem.yaml --matrix --format dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if format == "" {
				format = formatFromOutput(output)
			}
			switch format {
			case formatDOT, formatSVG, formatPNG:
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "unsupported render format %q (want dot, svg or png)", format)
			}

			eco, err := c.loadEcosystem(ctx, args[0])
			if err != nil {
				return err
			}

			var dot string
			if matrix {
				dot = nodelink.MatrixDOT(eco.matrix)
			} else {
				g := eco.validator.Graph()
				if reduce {
					removed := transform.BreakCycles(g)
					for _, e := range removed {
						printWarning("Cycle edge %s %s %s left out of the reduction", e.From, iconArrow, e.To)
					}
					transform.TransitiveReduction(g)
					for _, e := range removed {
						_ = g.AddEdge(e.From, e.To)
					}
				}
				dot = nodelink.GraphDOT(g, nodelink.Options{Detailed: detailed})
			}

			prog := newProgress(logger)
			var out []byte
			switch format {
			case formatSVG:
				out, err = nodelink.RenderSVG(ctx, dot)
			case formatPNG:
				out, err = nodelink.RenderPNG(ctx, dot)
			default:
				out = []byte(dot)
			}
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
			}

			if output == "" {
				if format != formatDOT {
					return errors.New(errors.ErrCodeInvalidInput, "--output is required for %s", format)
				}
				printRaw(dot)
				return nil
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
			}
			prog.done("Rendered " + format)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&matrix, "matrix", false, "draw the compatibility matrix instead of the dependency graph")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg, png (default from --output extension, else dot)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout, dot only)")
	cmd.Flags().BoolVar(&reduce, "reduce", false, "apply transitive reduction to the dependency graph")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show minimum versions in node labels")
	return cmd
}

// formatFromOutput picks the render format from a file extension.
func formatFromOutput(path string) string {
	switch ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext {
	case formatSVG, formatPNG, formatDOT:
		return ext
	case "gv":
		return formatDOT
	}
	return formatDOT
}
