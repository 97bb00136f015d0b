package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags; defaults to "dev".
var Version = "dev"

// NewVersionCommand builds `cyclus version`.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cyclus version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("cyclus", Version)
			return nil
		},
	}
}
