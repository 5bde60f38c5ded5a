package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/randomizer/pkg/randomizer"
)

const modulePath = "github.com/mesh-intelligence/randomizer"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the randomizer version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "randomizer v%s\nmodule: %s\n", randomizer.Version, modulePath)
			return nil
		},
	}
}
