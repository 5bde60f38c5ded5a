package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

var errNotConfirmed = fmt.Errorf("%w: pass --yes to confirm", types.ErrValidation)

func newDeleteCmd(s *session) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !s.pool.Has(name) {
				return fmt.Errorf("%w: %q", types.ErrNotFound, name)
			}
			if !yes {
				return fmt.Errorf("delete %q: %w", name, errNotConfirmed)
			}

			s.pool.Delete(name)
			if err := s.pool.Save(); err != nil {
				return err
			}
			s.out.Success("Deleted table %q", name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}

func newClearCmd(s *session) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every table",
		Long: "Clear removes every stored table. It also runs when the stored\n" +
			"tables cannot be read, replacing them with an empty store.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTolerateLoad: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("clear: %w", errNotConfirmed)
			}

			n := s.pool.Len()
			s.pool.Clear()
			if err := s.pool.Save(); err != nil {
				return err
			}
			s.out.Success("Cleared %d tables", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing every table")
	return cmd
}
