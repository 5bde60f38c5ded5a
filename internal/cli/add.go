package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

var errTableExists = fmt.Errorf("%w: table already exists", types.ErrValidation)

func newAddCmd(s *session) *cobra.Command {
	var (
		file  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or replace a table",
		Long: `Add stores a table built from multi-line text, one entry per line.
The text is read from --file, or from standard input when no file is given.

Example:
  printf 'red\ngreen\nblue\n' | randomizer add colors
  randomizer add npcs --file npcs.txt --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runAdd(cmd, args[0], file, force)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "read entries from this file instead of stdin")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing table")
	return cmd
}

func (s *session) runAdd(cmd *cobra.Command, name, file string, force bool) error {
	if s.pool.Has(name) && !force {
		return fmt.Errorf("%w: %q (use --force to replace it)", errTableExists, name)
	}

	text, err := readText(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}
	if err := s.pool.UpsertFromText(name, text); err != nil {
		return err
	}
	if err := s.pool.Save(); err != nil {
		return err
	}

	size := s.pool.Size(name)
	if s.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), tableJSON{Name: name, Size: size})
	}
	s.out.Success("Saved table %q with %d entries", name, size)
	return nil
}

// readText returns the contents of file, or all of in when file is empty.
func readText(in io.Reader, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("%w: read %s: %v", types.ErrValidation, file, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", systemError(fmt.Errorf("read stdin: %w", err))
	}
	return string(data), nil
}
