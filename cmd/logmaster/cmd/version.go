package cmd

import (
	"fmt"
	"runtime"

	"github.com/logmaster/dashboard/pkg/core/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "LogMaster v%s\n", version.App)
		fmt.Fprintf(out, "  Dashboard:  %s\n", version.ComponentVersion("dashboard"))
		fmt.Fprintf(out, "  Mock API:   %s\n", version.ComponentVersion("mockapi"))
		fmt.Fprintf(out, "  Git Commit: %s\n", version.GitCommit)
		fmt.Fprintf(out, "  Build Date: %s\n", version.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
