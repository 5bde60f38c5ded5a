package pool

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/randomizer/internal/logging"
	"github.com/mesh-intelligence/randomizer/internal/store"
	"github.com/mesh-intelligence/randomizer/pkg/types"
)

func newTestPool(t *testing.T) (*Pool, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return New(mem, logging.Discard()), mem
}

// randomTableText builds multi-line text with a few blank lines mixed in.
func randomTableText(fake faker.Faker) string {
	n := fake.IntBetween(1, 12)
	lines := make([]string, n)
	for i := range lines {
		if fake.IntBetween(0, 5) == 0 {
			continue
		}
		lines[i] = fake.Lorem().Sentence(fake.IntBetween(1, 6))
	}
	text := strings.Join(lines, "\n")
	if fake.Bool() {
		text += "\n"
	}
	if strings.TrimSpace(text) == "" {
		text = fake.Lorem().Word()
	}
	return text
}

func TestUpsertFromTextThenGet(t *testing.T) {
	p, _ := newTestPool(t)

	require.NoError(t, p.UpsertFromText("monsters", "goblin\norc\n\ntroll"))

	got, err := p.Get("monsters")
	require.NoError(t, err)
	assert.Equal(t, []string{"goblin", "orc", "", "troll"}, got)
	assert.True(t, p.Dirty())
}

func TestUpsertFromTextMatchesParseEntriesForRandomText(t *testing.T) {
	p, _ := newTestPool(t)
	fake := faker.NewWithSeed(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		name := fake.Lorem().Word() + "-" + fake.Lorem().Word()
		text := randomTableText(fake)

		require.NoError(t, p.UpsertFromText(name, text))
		got, err := p.Get(name)
		require.NoError(t, err)
		assert.Equal(t, types.ParseEntries(text), got)
		for _, e := range got {
			assert.NotContains(t, e, "\n")
		}
	}
}

func TestUpsertFromTextOverwrites(t *testing.T) {
	p, _ := newTestPool(t)
	require.NoError(t, p.UpsertFromText("t", "a\nb"))
	require.NoError(t, p.UpsertFromText("t", "c"))

	got, err := p.Get("t")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, got)
	assert.Equal(t, 1, p.Len())
}

func TestUpsertFromTextRejectsBlankInput(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		text    string
		wantErr error
	}{
		{name: "empty name", table: "", text: "a", wantErr: types.ErrInvalidName},
		{name: "whitespace name", table: " \t ", text: "a", wantErr: types.ErrInvalidName},
		{name: "empty text", table: "t", text: "", wantErr: types.ErrInvalidContent},
		{name: "whitespace text", table: "t", text: "\n \n\t", wantErr: types.ErrInvalidContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPool(t)
			require.NoError(t, p.UpsertFromText("existing", "x"))
			require.NoError(t, p.Save())

			err := p.UpsertFromText(tt.table, tt.text)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, types.IsValidation(err))
			assert.Equal(t, []string{"existing"}, p.Names())
			assert.False(t, p.Dirty(), "rejected input must not mutate the pool")
		})
	}
}

func TestHasAndDelete(t *testing.T) {
	p, _ := newTestPool(t)
	assert.False(t, p.Has(""))
	assert.False(t, p.Has("t"))

	require.NoError(t, p.UpsertFromText("t", "a"))
	assert.True(t, p.Has("t"))

	p.Delete("t")
	assert.False(t, p.Has("t"))

	// Deleting again is a no-op.
	p.Delete("t")
	assert.True(t, p.IsEmpty())
}

func TestDeleteMissingDoesNotDirty(t *testing.T) {
	p, _ := newTestPool(t)
	p.Delete("nothing")
	assert.False(t, p.Dirty())
}

func TestClear(t *testing.T) {
	p, _ := newTestPool(t)
	p.Clear()
	assert.True(t, p.IsEmpty())

	require.NoError(t, p.UpsertFromText("a", "1"))
	require.NoError(t, p.UpsertFromText("b", "2"))
	p.Clear()

	assert.True(t, p.IsEmpty())
	assert.Empty(t, p.Names())
	assert.Equal(t, 0, p.Len())
}

func TestNamesSorted(t *testing.T) {
	p, _ := newTestPool(t)
	for _, n := range []string{"weather", "monsters", "loot"} {
		require.NoError(t, p.UpsertFromText(n, "x"))
	}
	assert.Equal(t, []string{"loot", "monsters", "weather"}, p.Names())
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	p, _ := newTestPool(t)
	_, err := p.Get("ghost")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.True(t, types.IsNotFound(err))

	_, err = p.Text("ghost")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGetReturnsIndependentCopy(t *testing.T) {
	p, _ := newTestPool(t)
	require.NoError(t, p.UpsertFromText("t", "a\nb"))

	got, err := p.Get("t")
	require.NoError(t, err)
	got[0] = "mutated"

	again, err := p.Get("t")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, again)

	snap := p.Snapshot()
	snap["t"][1] = "mutated"
	again, err = p.Get("t")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, again)
}

func TestTextRoundTrip(t *testing.T) {
	p, _ := newTestPool(t)
	require.NoError(t, p.UpsertFromText("t", "a\n\nc"))

	text, err := p.Text("t")
	require.NoError(t, err)
	assert.Equal(t, "a\n\nc\n", text)

	require.NoError(t, p.UpsertFromText("copy", text))
	a, _ := p.Get("t")
	b, _ := p.Get("copy")
	assert.Equal(t, a, b)
}

func TestSize(t *testing.T) {
	p, _ := newTestPool(t)
	require.NoError(t, p.UpsertFromText("t", "a\nb\nc\n"))
	assert.Equal(t, 3, p.Size("t"))
	assert.Equal(t, 0, p.Size("ghost"))
}

func TestSpec(t *testing.T) {
	p, _ := newTestPool(t)
	require.NoError(t, p.UpsertFromText("t", "x\ny\nz"))

	spec, err := p.Spec("t", 3, false)
	require.NoError(t, err)
	assert.Equal(t, "t", spec.TableName)
	assert.Equal(t, []string{"x", "y", "z"}, spec.Entries)

	spec.Entries[0] = "mutated"
	got, _ := p.Get("t")
	assert.Equal(t, "x", got[0], "spec entries must be a private copy")

	_, err = p.Spec("t", 4, false)
	assert.ErrorIs(t, err, types.ErrCountExceedsTable)

	_, err = p.Spec("ghost", 1, true)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestLoadWithoutStoredData(t *testing.T) {
	p, _ := newTestPool(t)
	require.NoError(t, p.UpsertFromText("stale", "x"))

	loaded, err := p.Load()
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.True(t, p.IsEmpty())
	assert.False(t, p.Dirty())
}

func TestSaveThenFreshPoolLoad(t *testing.T) {
	mem := store.NewMemory()
	p := New(mem, logging.Discard())
	require.NoError(t, p.UpsertFromText("monsters", "goblin\norc"))
	require.NoError(t, p.UpsertFromText("weather", "rain\n\nsun\n"))
	require.NoError(t, p.Save())
	assert.False(t, p.Dirty())

	fresh := New(mem, logging.Discard())
	loaded, err := fresh.Load()
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, p.Snapshot(), fresh.Snapshot())
}

func TestSaveLoadRoundTripOnDisk(t *testing.T) {
	fake := faker.NewWithSeed(rand.NewSource(11))

	for _, backend := range []string{types.BackendJSONL, types.BackendSQLite, types.BackendYAML} {
		t.Run(backend, func(t *testing.T) {
			s, err := store.Open(types.Config{Backend: backend, DataDir: t.TempDir()})
			require.NoError(t, err)

			p := New(s, logging.Discard())
			for i := 0; i < 10; i++ {
				name := fake.Lorem().Word() + " " + fake.Lorem().Word()
				require.NoError(t, p.UpsertFromText(name, randomTableText(fake)))
			}
			require.NoError(t, p.Save())

			fresh := New(s, logging.Discard())
			loaded, err := fresh.Load()
			require.NoError(t, err)
			assert.True(t, loaded)
			assert.Equal(t, p.Snapshot(), fresh.Snapshot())
		})
	}
}

func TestLoadCorruptLeavesPoolEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Open(types.Config{Backend: types.BackendJSONL, DataDir: dir})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tables.jsonl"),
		[]byte(`{"format":"randomizer.tables","version":1}`+"\n"+`{"name":"a","entries":["x"]}`+"\n"+"{broken\n"), 0o644))

	p := New(s, logging.Discard())
	require.NoError(t, p.UpsertFromText("before", "x"))

	loaded, err := p.Load()
	assert.False(t, loaded)
	assert.ErrorIs(t, err, types.ErrPersistence)
	assert.True(t, p.IsEmpty(), "a failed load must not leave a partial pool")
}

func TestSaveFailureKeepsPoolAndStoredData(t *testing.T) {
	p, mem := newTestPool(t)
	require.NoError(t, p.UpsertFromText("first", "a"))
	require.NoError(t, p.Save())

	require.NoError(t, p.UpsertFromText("second", "b"))
	mem.SetSaveError(os.ErrPermission)

	err := p.Save()
	assert.ErrorIs(t, err, types.ErrPersistence)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.True(t, p.Dirty())
	assert.Equal(t, []string{"first", "second"}, p.Names())

	stored, err := mem.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"first": {"a"}}, stored)
}

func TestConcurrentAccess(t *testing.T) {
	p, _ := newTestPool(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a' + i))
			for j := 0; j < 100; j++ {
				_ = p.UpsertFromText(name, "x\ny")
				_ = p.Names()
				_, _ = p.Get(name)
				if j%10 == 0 {
					p.Delete(name)
				}
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, p.Len(), 8)
}
