package randomizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

func TestOpenStoreRoundTrip(t *testing.T) {
	st, err := OpenStore(types.Config{Backend: types.BackendJSONL, DataDir: t.TempDir()})
	require.NoError(t, err)

	_, err = st.Load()
	assert.ErrorIs(t, err, types.ErrNoData)

	want := map[string][]string{"colors": {"red", "green"}}
	require.NoError(t, st.Save(want))
	got, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	_, err := OpenStore(types.Config{Backend: "csv"})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestRandomizeSeed(t *testing.T) {
	specs := []types.DrawSpec{{TableName: "d6", Entries: []string{"1", "2", "3", "4", "5", "6"}, OutputCount: 3, AllowRepeats: true}}
	a, err := RandomizeSeed(specs, false, 99)
	require.NoError(t, err)
	b, err := RandomizeSeed(specs, false, 99)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 3)
}
