package types

import "strings"

// Table is a named, ordered list of text entries.
type Table struct {
	Name    string   `json:"name" yaml:"name"`
	Entries []string `json:"entries" yaml:"entries"`
}

// ValidateName returns ErrInvalidName if name is empty or whitespace-only.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}

// ValidateText returns ErrInvalidContent if text is empty or whitespace-only.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidContent
	}
	return nil
}

// ParseEntries splits raw multi-line text into entries. Every '\n' ends an
// entry, so blank lines in the middle of the text produce empty entries. A
// trailing fragment with no terminating '\n' becomes the final entry.
func ParseEntries(text string) []string {
	entries := make([]string, 0, strings.Count(text, "\n")+1)
	var buf strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			entries = append(entries, buf.String())
			buf.Reset()
			continue
		}
		buf.WriteByte(text[i])
	}
	if len(text) > 0 && text[len(text)-1] != '\n' {
		entries = append(entries, buf.String())
	}
	return entries
}

// FormatEntries renders entries as text, each followed by '\n'.
// ParseEntries(FormatEntries(e)) returns e.
func FormatEntries(entries []string) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return b.String()
}

// CloneEntries returns an independent copy of entries. The result is never nil.
func CloneEntries(entries []string) []string {
	out := make([]string, len(entries))
	copy(out, entries)
	return out
}
