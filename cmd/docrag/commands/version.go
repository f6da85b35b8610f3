package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion records the build version, set from the main package.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the docrag version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "docrag %s\n", version)
		},
	}
}
