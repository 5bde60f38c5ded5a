package cli

import "github.com/spf13/cobra"

func newShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print the entries of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if s.flags.jsonMode {
				entries, err := s.pool.Get(name)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), tableJSON{Name: name, Size: len(entries), Entries: entries})
			}

			text, err := s.pool.Text(name)
			if err != nil {
				return err
			}
			s.out.Printf("%s", text)
			return nil
		},
	}
}
