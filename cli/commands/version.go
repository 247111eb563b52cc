package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/pure-orm/cli/internal/version"
)

func newVersionCommand(a *app) *cobra.Command {
	var (
		full   bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			info := version.Get()
			switch {
			case asJSON:
				return a.printer.JSON(info)
			case full:
				fmt.Fprintln(a.printer.Out(), info.FullString())
			default:
				fmt.Fprintln(a.printer.Out(), info.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "include build details")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
