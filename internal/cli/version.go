package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/versionforge/pkg/errors"
	"github.com/matzehuels/versionforge/pkg/version"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var hints bool

	cmd := &cobra.Command{
		Use:   "compare <from> <to>",
		Short: "Show the difference between two versions",
		Example: `  versionforge compare 1.4.2 2.0.0
  versionforge compare v2.3.0 v2.1.0 --hints`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := args[0], args[1]
			d := version.CalculateDelta(from, to)

			printInfo("%s %s %s", StyleValue.Render(from), iconArrow, StyleValue.Render(to))
			if !d.Known() {
				printWarning("Cannot compare: %s", invalidOperands(from, to))
				return errors.New(errors.ErrCodeInvalidVersion, "invalid version")
			}
			printDetail("%s", d.Describe())
			printDetail("%s", describeChange(d))

			if hints {
				printSection("Suggested migration path", migrationHints(d))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&hints, "hints", false, "print a suggested migration path")
	return cmd
}

func invalidOperands(from, to string) string {
	switch {
	case !version.Parse(from).Valid() && !version.Parse(to).Valid():
		return fmt.Sprintf("%q and %q are not versions", from, to)
	case !version.Parse(from).Valid():
		return fmt.Sprintf("%q is not a version", from)
	}
	return fmt.Sprintf("%q is not a version", to)
}

// describeChange names the most significant changed field and what it
// usually means.
func describeChange(d version.Delta) string {
	switch {
	case d.IsSame:
		return iconSame + " Equivalent versions"
	case d.IsUpgrade:
		switch {
		case d.Major > 0:
			return iconUp + " Upgrade (Major - expect breaking changes)"
		case d.Minor > 0:
			return iconUp + " Upgrade (Minor - new features)"
		}
		return iconUp + " Upgrade (Patch - bug fixes)"
	}
	switch {
	case d.Major < 0:
		return iconDown + " Downgrade (Major - significant rollback)"
	case d.Minor < 0:
		return iconDown + " Downgrade (Minor - feature removal)"
	}
	return iconDown + " Downgrade (Patch - reverting fixes)"
}

func migrationHints(d version.Delta) []string {
	switch {
	case d.Major > 0:
		return []string{
			"Review breaking changes in documentation",
			"Update dependencies before upgrading",
			"Consider incremental updates through minor versions",
		}
	case d.Minor > 3:
		return []string{"Test new features incrementally", "Review deprecation notices"}
	case d.Minor > 0:
		return []string{"Update with standard testing procedures"}
	case d.IsDowngrade && d.Major < 0:
		return []string{
			"Caution: Major downgrade may result in lost functionality",
			"Create compatibility layer for dependent systems",
		}
	}
	return nil
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		minimum string
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "check <version>",
		Short: "Check a version against a minimum requirement",
		Long: `Check reports whether a version satisfies a minimum version. Without --min
the default minimum ` + version.DefaultMinVersion + ` applies. With --strict the version must also be
a well-formed SemVer 2.0.0 string.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			text := args[0]

			if strict {
				if err := version.ValidateStrict(text); err != nil {
					printError("%s", errors.UserMessage(err))
					return err
				}
			}

			v := version.Parse(text)
			if !v.Valid() {
				printError("%q is not a version", text)
				return errors.New(errors.ErrCodeInvalidVersion, "invalid version %q", text)
			}

			required := minimum
			if required == "" {
				required = version.DefaultMinVersion
			}
			logger.Debug("checking version", "version", v, "min", required)

			printKeyValue("Canonical", version.Format(text))
			if version.IsCompatible(text, minimum) {
				printSuccess("%s satisfies %s %s", v, "≥", required)
				return nil
			}
			printError("%s does not satisfy %s %s", v, "≥", required)
			return errors.New(errors.ErrCodeIncompatible, "%s is below %s", v, required)
		},
	}

	cmd.Flags().StringVar(&minimum, "min", "", "minimum required version (default "+version.DefaultMinVersion+")")
	cmd.Flags().BoolVar(&strict, "strict", false, "require strict SemVer 2.0.0 syntax")
	return cmd
}
