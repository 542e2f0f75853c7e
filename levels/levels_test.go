package levels

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedHollow(t *testing.T) {
	lvl, err := Load("hollow.json")
	require.NoError(t, err)
	require.Equal(t, "hollow", lvl.Name)
	require.Equal(t, 40, lvl.Width())
	require.Equal(t, 15, lvl.Height())

	_, ok := lvl.Entity("player")
	require.True(t, ok)
	require.Equal(t, DefaultEntryAngle, lvl.EntryAngle())
}

func TestParseRejectsBadGrids(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"no_tile_size", `{"rows":["#"]}`},
		{"no_rows", `{"tile_size":16}`},
		{"ragged", `{"tile_size":16,"rows":["##","#"]}`},
		{"unknown_tile", `{"tile_size":16,"rows":["#x"]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.json))
			require.ErrorIs(t, err, ErrBadGrid)
		})
	}

	_, err := Parse([]byte(`{`))
	require.Error(t, err)
}

func TestGridCoordinates(t *testing.T) {
	lvl, err := Parse([]byte(`{
		"tile_size": 10,
		"one_way_entry_angle": 45,
		"rows": ["...", ".=.", "#/#"]
	}`))
	require.NoError(t, err)

	require.Equal(t, TileSolid, lvl.At(0, 0))
	require.Equal(t, TileSlopeUpRight, lvl.At(1, 0))
	require.Equal(t, TileOneWay, lvl.At(1, 1))
	require.Equal(t, TileEmpty, lvl.At(-1, 0))
	require.Equal(t, TileEmpty, lvl.At(0, 3))

	require.Equal(t, cp.Vector{X: 5, Y: 25}, lvl.WorldPos(0, 0), "top-left cell centre")
	require.Equal(t, cp.Vector{X: 15, Y: 5}, lvl.WorldPos(1, 2))

	w, h := lvl.WorldSize()
	require.Equal(t, 30.0, w)
	require.Equal(t, 30.0, h)
	require.Equal(t, 45.0, lvl.EntryAngle())
}
