package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

func TestParseTableArg(t *testing.T) {
	tests := []struct {
		value   string
		want    tableArg
		wantErr error
	}{
		{value: "colors", want: tableArg{name: "colors", count: 1}},
		{value: "colors:3", want: tableArg{name: "colors", count: 3, explicit: true}},
		{value: "colors:3:repeat", want: tableArg{name: "colors", count: 3, repeats: true, explicit: true}},
		{value: "colors:repeat", want: tableArg{name: "colors", count: 1, repeats: true, explicit: true}},
		{value: "era:bronze", want: tableArg{name: "era:bronze", count: 1}},
		{value: "era:bronze:2", want: tableArg{name: "era:bronze", count: 2, explicit: true}},
		{value: "colors:-2", want: tableArg{name: "colors", count: -2, explicit: true}},
		{value: "colors:x:repeat", wantErr: types.ErrValidation},
		{value: ":3", wantErr: types.ErrInvalidName},
		{value: "", wantErr: types.ErrInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseTableArg(tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func seededEnv(t *testing.T) env {
	t.Helper()
	e := newEnv(t)
	e.mustRun(t, "red\ngreen\nblue\n", "add", "colors")
	e.mustRun(t, "circle\nsquare\n", "add", "shapes")
	return e
}

func outputLines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestDrawIndependent(t *testing.T) {
	e := seededEnv(t)
	lines := outputLines(e.mustRun(t, "", "draw", "--table", "colors:3", "--table", "shapes:2", "--seed", "5"))
	require.Len(t, lines, 5)
	assert.ElementsMatch(t, []string{"red", "green", "blue"}, lines[:3])
	assert.ElementsMatch(t, []string{"circle", "square"}, lines[3:])
}

func TestDrawDefaultCountIsOne(t *testing.T) {
	e := seededEnv(t)
	lines := outputLines(e.mustRun(t, "", "draw", "-t", "shapes"))
	require.Len(t, lines, 1)
	assert.Contains(t, []string{"circle", "square"}, lines[0])
}

func TestDrawSeedIsReproducible(t *testing.T) {
	e := seededEnv(t)
	args := []string{"draw", "--table", "colors:50:repeat", "--seed", "1234"}
	assert.Equal(t, e.mustRun(t, "", args...), e.mustRun(t, "", args...))
}

func TestDrawWithRepeats(t *testing.T) {
	e := seededEnv(t)
	lines := outputLines(e.mustRun(t, "", "draw", "--table", "shapes:10:repeat"))
	require.Len(t, lines, 10)
	for _, l := range lines {
		assert.Contains(t, []string{"circle", "square"}, l)
	}
}

func TestDrawUnified(t *testing.T) {
	e := seededEnv(t)
	lines := outputLines(e.mustRun(t, "", "draw", "--unified", "--table", "colors:5", "--table", "shapes"))
	require.Len(t, lines, 5)
	seen := map[string]bool{}
	for _, l := range lines {
		assert.False(t, seen[l], "no repeats in %v", lines)
		seen[l] = true
	}
}

func TestDrawUnifiedWarnsAboutIgnoredSettings(t *testing.T) {
	e := seededEnv(t)
	r := e.run(t, "", "draw", "--unified", "--table", "colors:1", "--table", "shapes:9:repeat")
	require.Equal(t, exitSuccess, r.code, r.stderr)
	assert.Len(t, outputLines(r.stdout), 1)
	assert.Contains(t, r.stderr, "ignored in unified mode")
}

func TestDrawJSON(t *testing.T) {
	e := seededEnv(t)
	var got struct {
		Seed    uint64   `json:"seed"`
		Unified bool     `json:"unified"`
		Results []string `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(e.mustRun(t, "", "--json", "draw", "-t", "colors:2", "--seed", "77")), &got))
	assert.Equal(t, uint64(77), got.Seed)
	assert.False(t, got.Unified)
	assert.Len(t, got.Results, 2)
}

func TestDrawErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no table flag", []string{"draw"}, "table"},
		{"unknown table", []string{"draw", "-t", "ghost"}, "randomizer list"},
		{"overdraw without repeats", []string{"draw", "-t", "shapes:3"}, "repeat"},
		{"unified overdraw", []string{"draw", "--unified", "-t", "colors:6", "-t", "shapes"}, "combined entries"},
		{"negative count", []string{"draw", "-t", "colors:-1"}, "negative"},
		{"above maximum", []string{"draw", "-t", "colors:1000001:repeat"}, "exceeds"},
		{"zero outputs", []string{"draw", "-t", "colors:0"}, "nothing to draw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := seededEnv(t)
			r := e.run(t, "", tt.args...)
			assert.Equal(t, exitUserError, r.code)
			assert.Empty(t, r.stdout)
			assert.Contains(t, r.stderr, tt.msg)
		})
	}
}

func TestDrawJSONUnifiedAboveFirstTable(t *testing.T) {
	e := seededEnv(t)
	var got struct {
		Unified bool     `json:"unified"`
		Results []string `json:"results"`
	}
	out := e.mustRun(t, "", "--json", "draw", "--unified", "-t", "shapes:5", "-t", "colors", "--seed", "9")
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Unified)
	assert.ElementsMatch(t, []string{"circle", "square", "red", "green", "blue"}, got.Results)
}
