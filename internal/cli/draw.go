package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/randomizer/internal/picker"
	"github.com/mesh-intelligence/randomizer/internal/sampler"
	"github.com/mesh-intelligence/randomizer/pkg/types"
)

// repeatToken enables repeats in a --table value.
const repeatToken = "repeat"

// tableArg is one parsed --table value.
type tableArg struct {
	name     string
	count    int
	repeats  bool
	explicit bool // count or repeat flag was given
}

var errNothingToDraw = fmt.Errorf("%w: nothing to draw, every output count is zero", types.ErrValidation)

func newDrawCmd(s *session) *cobra.Command {
	var (
		tables  []string
		unified bool
		seed    uint64
	)
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw random entries from one or more tables",
		Long: `Draw picks random entries. Each --table value has the form
NAME[:COUNT[:repeat]]; COUNT defaults to 1 and "repeat" allows the same entry
to be drawn more than once.

Without --unified every table is drawn independently and the results are
printed in table order. With --unified all listed tables form one pool and
only the first table's count and repeat setting apply.

Example:
  randomizer draw --table colors:2 --table shapes:3:repeat
  randomizer draw --unified --table colors:4 --table shapes
  randomizer draw --table d20:5:repeat --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			useSeed := sampler.TimeSeed()
			if cmd.Flags().Changed("seed") {
				useSeed = seed
			}
			return s.runDraw(cmd, tables, unified, useSeed)
		},
	}
	cmd.Flags().StringArrayVarP(&tables, "table", "t", nil, "table to draw from as NAME[:COUNT[:repeat]] (repeatable)")
	cmd.Flags().BoolVar(&unified, "unified", false, "draw from all tables as one pool")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible draw")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}

func (s *session) runDraw(cmd *cobra.Command, values []string, unified bool, seed uint64) error {
	sel, err := s.selection(values, unified)
	if err != nil {
		return err
	}
	if !sel.Ready() {
		return errNothingToDraw
	}
	specs, err := sel.Specs()
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"tables":  len(specs),
		"unified": unified,
		"seed":    seed,
	}).Info("drawing")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := sampler.Go(specs, sel.Unified(), seed).Wait(ctx)
	if err != nil {
		return err
	}

	if s.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), struct {
			Seed    uint64   `json:"seed"`
			Unified bool     `json:"unified"`
			Results []string `json:"results"`
		}{seed, sel.Unified(), results})
	}
	for _, r := range results {
		s.out.Println(r)
	}
	return nil
}

// selection builds a picker selection from --table values. Counts that the
// picker would clamp are reported as errors instead.
func (s *session) selection(values []string, unified bool) (*picker.Selection, error) {
	args := make([]tableArg, 0, len(values))
	for _, value := range values {
		arg, err := parseTableArg(value)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	sel := picker.NewSelection(s.pool)
	for i, arg := range args {
		if i > 0 {
			sel.AddRow()
		}
		if err := sel.SetTable(i, arg.name); err != nil {
			return nil, err
		}
	}
	sel.SetUnified(unified)

	for i, arg := range args {
		if !sel.Editable(i, picker.ColumnCount) {
			if arg.explicit {
				s.out.Warning("count and repeat for %q are ignored in unified mode", arg.name)
			}
			continue
		}
		if err := sel.SetAllowRepeats(i, arg.repeats); err != nil {
			return nil, err
		}
		if err := sel.SetCount(i, arg.count); err != nil {
			return nil, fmt.Errorf("table %q: %w", arg.name, err)
		}
	}
	return sel, nil
}

// parseTableArg parses NAME[:COUNT[:repeat]]. Segments are taken from the
// right, so a name may itself contain ':' as long as its last segment is not
// a number.
func parseTableArg(value string) (tableArg, error) {
	arg := tableArg{count: 1}
	parts := strings.Split(value, ":")

	if len(parts) > 1 && parts[len(parts)-1] == repeatToken {
		arg.repeats = true
		arg.explicit = true
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 1 {
		if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			arg.count = n
			arg.explicit = true
			parts = parts[:len(parts)-1]
		} else if arg.repeats {
			return tableArg{}, fmt.Errorf("%w: %q: count must be a number", types.ErrValidation, value)
		}
	}

	arg.name = strings.Join(parts, ":")
	if err := types.ValidateName(arg.name); err != nil {
		return tableArg{}, fmt.Errorf("%q: %w", value, err)
	}
	return arg, nil
}
