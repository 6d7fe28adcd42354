package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	var extended bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version information. Use --extended for commit, build date and Go version.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(a.out, "ask %s\n", versionInfo.Version)
			if extended {
				fmt.Fprintf(a.out, "Commit: %s\n", versionInfo.Commit)
				fmt.Fprintf(a.out, "Built: %s\n", versionInfo.BuildDate)
				fmt.Fprintf(a.out, "Go: %s\n", runtime.Version())
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&extended, "extended", "e", false, "show extended version information")
	return cmd
}
