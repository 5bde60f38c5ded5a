package types

// MaxOutputsPerTable bounds the output count of a single draw spec.
const MaxOutputsPerTable = 1_000_000

// DrawSpec requests OutputCount entries from one table for a single
// randomization. Entries is a private working copy; the sampler consumes it
// without touching the pool.
type DrawSpec struct {
	TableName    string
	Entries      []string
	OutputCount  int
	AllowRepeats bool
}

// NewDrawSpec builds a validated spec over a copy of entries.
func NewDrawSpec(name string, entries []string, count int, allowRepeats bool) (DrawSpec, error) {
	s := DrawSpec{
		TableName:    name,
		Entries:      CloneEntries(entries),
		OutputCount:  count,
		AllowRepeats: allowRepeats,
	}
	if err := s.Validate(); err != nil {
		return DrawSpec{}, err
	}
	return s, nil
}

// Validate checks the count bounds: non-negative, at most MaxOutputsPerTable,
// and at most len(Entries) when repeats are not allowed. A spec without
// entries can only request zero outputs.
func (s DrawSpec) Validate() error {
	if s.OutputCount < 0 {
		return ErrNegativeCount
	}
	if s.OutputCount > MaxOutputsPerTable {
		return ErrCountTooLarge
	}
	if (!s.AllowRepeats || len(s.Entries) == 0) && s.OutputCount > len(s.Entries) {
		return ErrCountExceedsTable
	}
	return nil
}

// Clone returns a copy of s with its own Entries slice.
func (s DrawSpec) Clone() DrawSpec {
	s.Entries = CloneEntries(s.Entries)
	return s
}

// ValidateUnified checks the unified-mode bound: when the first spec
// disallows repeats, its count must not exceed the combined entries of all
// specs. Only the first spec's count and flag govern a unified draw.
func ValidateUnified(specs []DrawSpec) error {
	if len(specs) == 0 {
		return nil
	}
	first := specs[0]
	if first.OutputCount < 0 {
		return ErrNegativeCount
	}
	if first.OutputCount > MaxOutputsPerTable {
		return ErrCountTooLarge
	}
	total := 0
	for _, s := range specs {
		total += len(s.Entries)
	}
	if first.AllowRepeats && total > 0 {
		return nil
	}
	if first.OutputCount > total {
		return ErrCountExceedsPool
	}
	return nil
}
