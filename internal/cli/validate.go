package cli

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/versionforge/pkg/dag/transform"
	"github.com/matzehuels/versionforge/pkg/errors"
	"github.com/matzehuels/versionforge/pkg/observability"
	"github.com/matzehuels/versionforge/pkg/validator"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		fix     bool
		targets map[string]string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Check every dependency against its dependent's minimum version",
		Example: `  versionforge validate ecosystem.yaml
  versionforge validate ecosystem.yaml --fix --target core=2.0.0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eco, err := c.loadEcosystem(ctx, args[0])
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			start := time.Now()
			res := eco.validator.Validate()
			observability.Engine().OnValidate(ctx, len(eco.validator.Components()), len(res.Issues), time.Since(start))
			prog.done("Validated dependency graph")

			if asJSON {
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				printRaw(string(data))
			} else {
				g := eco.validator.Graph()
				printStats(len(eco.validator.Components()), g.EdgeCount(), len(eco.manifest.Compatibility))
				if err := eco.validator.DetectCycle(); err != nil {
					printWarning("%s", errors.UserMessage(err))
				}
				if res.Valid {
					printSuccess("Dependency graph is valid")
					return nil
				}
				printError("Dependency graph validation failed:")
				for _, msg := range res.Errors() {
					printBullet("%s", msg)
				}
			}
			if res.Valid {
				return nil
			}

			if fix {
				printSection("Suggested fixes", eco.validator.Suggestions())
				if len(targets) > 0 {
					plan, err := eco.validator.UpgradePlan(targets)
					switch {
					case err != nil:
						printWarning("No viable upgrade plan: %s", errors.UserMessage(err))
					case len(plan) == 0:
						printWarning("No viable upgrade plan found")
					default:
						printSection("Suggested upgrade plan", planLines(plan))
					}
				}
			}
			return errors.New(errors.ErrCodeIncompatible, "%d validation issues", len(res.Issues))
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "suggest fixes for validation issues")
	cmd.Flags().StringToStringVar(&targets, "target", nil, "target versions for the suggested plan (name=version)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

// planCommand creates the plan command.
func (c *CLI) planCommand() *cobra.Command {
	var (
		targets map[string]string
		waves   bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "plan <manifest> --target name=version [--target ...]",
		Short: "Order upgrades so dependencies go before their dependents",
		Example: `  versionforge plan ecosystem.yaml --target core=2.0.0 --target api=3.0.0
  versionforge plan ecosystem.yaml --target core=2.0.0,ui=4.0.0 --waves`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(targets) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "at least one --target is required")
			}
			eco, err := c.loadEcosystem(ctx, args[0])
			if err != nil {
				return err
			}

			for _, name := range slices.Sorted(maps.Keys(targets)) {
				if _, ok := eco.validator.Component(name); !ok && len(eco.validator.Dependents(name)) == 0 {
					printWarning("Ignoring unknown component %q", name)
				}
			}

			start := time.Now()
			plan, err := eco.validator.UpgradePlan(targets)
			observability.Engine().OnPlan(ctx, len(targets), len(plan), time.Since(start), err)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(map[string]validator.Plan{"steps": plan}, "", "  ")
				if err != nil {
					return err
				}
				printRaw(string(data))
				return nil
			}

			if len(plan) == 0 {
				printWarning("No viable upgrade plan found")
				return nil
			}
			printSection("Upgrade plan", planLines(plan))
			if waves {
				printSection("Parallel waves", waveLines(eco.validator, plan))
			}
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&targets, "target", nil, "target version per component (name=version)")
	cmd.Flags().BoolVar(&waves, "waves", false, "group the plan into waves that can be upgraded in parallel")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	return cmd
}

func planLines(plan validator.Plan) []string {
	lines := make([]string, len(plan))
	for i, step := range plan {
		lines[i] = step.Component + ": " + iconArrow + " " + StyleHighlight.Render(step.Version)
	}
	return lines
}

// waveLines groups the planned components by dependency depth in the full
// graph. Components outside the plan are left out of each wave.
func waveLines(v *validator.Validator, plan validator.Plan) []string {
	inPlan := plan.Versions()
	all, _ := transform.Waves(v.Graph())

	var lines []string
	for _, wave := range all {
		var names []string
		for _, id := range wave {
			if _, ok := inPlan[id]; ok {
				names = append(names, id)
			}
		}
		if len(names) > 0 {
			lines = append(lines, "wave "+strconv.Itoa(len(lines)+1)+": "+strings.Join(names, ", "))
		}
	}
	return lines
}
