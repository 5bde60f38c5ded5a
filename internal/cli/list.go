package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored tables with their entry counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// One snapshot so names and counts come from the same state.
			snap := s.pool.Snapshot()
			names := make([]string, 0, len(snap))
			for name := range snap {
				names = append(names, name)
			}
			sort.Strings(names)

			if s.flags.jsonMode {
				tables := make([]tableJSON, 0, len(names))
				for _, name := range names {
					tables = append(tables, tableJSON{Name: name, Size: len(snap[name])})
				}
				return writeJSON(cmd.OutOrStdout(), tables)
			}

			if len(names) == 0 {
				s.out.Println("No tables stored")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tENTRIES")
			for _, name := range names {
				fmt.Fprintf(tw, "%s\t%d\n", name, len(snap[name]))
			}
			return tw.Flush()
		},
	}
}
