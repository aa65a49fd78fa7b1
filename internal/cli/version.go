package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/stagewatch-io/stagewatch/internal/buildinfo"
	"github.com/stagewatch-io/stagewatch/internal/updater"
)

var versionCheckFlag bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%s %s (%s)\n",
			styleBrand.Render("Stagewatch"),
			styleVersion.Render(buildinfo.Version),
			buildinfo.Codename)
		fmt.Printf("  %s %s\n", styleLabel.Render("commit:"), buildinfo.CommitHash)
		fmt.Printf("  %s %s\n", styleLabel.Render("built:"), buildinfo.BuildDate)
		fmt.Printf("  %s %s/%s %s\n", styleLabel.Render("platform:"), runtime.GOOS, runtime.GOARCH, runtime.Version())

		if !versionCheckFlag {
			return nil
		}

		result, err := updater.CheckForUpdate()
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !result.Available {
			fmt.Println(styleSuccess.Render("Up to date."))
			return nil
		}
		fmt.Printf("%s v%s → v%s\n",
			styleUpdate.Render("Update available:"),
			result.CurrentVersion, result.LatestVersion)
		fmt.Printf("  %s %s\n", styleLabel.Render("release:"), result.ReleaseURL)
		fmt.Printf("  %s %s %s\n", styleHint.Render("run"), styleCommand.Render("stagewatch update"), styleHint.Render("to install"))
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheckFlag, "check", false, "check GitHub for a newer release")
}
