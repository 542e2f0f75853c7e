package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jakecoffman/cp"
)

//go:embed *.json
var LevelsFS embed.FS

// Tile is one grid cell.
type Tile byte

const (
	TileEmpty         Tile = '.'
	TileSolid         Tile = '#'
	TileSlopeUpRight  Tile = '/'
	TileSlopeUpLeft   Tile = '\\'
	TileOneWay        Tile = '='
	TileVisionBlocker Tile = '%'
)

var ErrBadGrid = errors.New("levels: malformed tile grid")

// Level is a tile grid plus entity placements. Rows are listed top first;
// entity coordinates are in tiles from the top-left corner.
type Level struct {
	Name     string   `json:"name"`
	TileSize float64  `json:"tile_size"`
	Rows     []string `json:"rows"`
	Entities []Entity `json:"entities,omitempty"`

	// CameraBounds overrides the bounds derived from the tiles.
	CameraBounds *Bounds `json:"camera_bounds,omitempty"`
	// OneWayEntryAngle is the widest landing angle from straight down, in
	// degrees, that one-way platforms accept. Zero means DefaultEntryAngle.
	OneWayEntryAngle float64 `json:"one_way_entry_angle,omitempty"`
}

const DefaultEntryAngle = 60.0

func (l *Level) EntryAngle() float64 {
	if l.OneWayEntryAngle > 0 {
		return l.OneWayEntryAngle
	}
	return DefaultEntryAngle
}

type Entity struct {
	Type  string         `json:"type"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

func (l *Level) Width() int {
	if len(l.Rows) == 0 {
		return 0
	}
	return len(l.Rows[0])
}

func (l *Level) Height() int {
	return len(l.Rows)
}

// At returns the tile at column x and row y counted from the bottom.
func (l *Level) At(x, y int) Tile {
	if y < 0 || y >= l.Height() || x < 0 || x >= l.Width() {
		return TileEmpty
	}
	return Tile(l.Rows[l.Height()-1-y][x])
}

// WorldSize is the level extent in world units.
func (l *Level) WorldSize() (w, h float64) {
	return float64(l.Width()) * l.TileSize, float64(l.Height()) * l.TileSize
}

// WorldPos converts entity tile coordinates to the centre of that cell in
// Y-up world space.
func (l *Level) WorldPos(x, y float64) cp.Vector {
	return cp.Vector{
		X: (x + 0.5) * l.TileSize,
		Y: (float64(l.Height()) - y - 0.5) * l.TileSize,
	}
}

// Validate checks the grid is rectangular and uses known tiles.
func (l *Level) Validate() error {
	if l.TileSize <= 0 {
		return fmt.Errorf("%w: tile_size must be positive", ErrBadGrid)
	}
	if l.Height() == 0 {
		return fmt.Errorf("%w: no rows", ErrBadGrid)
	}
	w := l.Width()
	for i, row := range l.Rows {
		if len(row) != w {
			return fmt.Errorf("%w: row %d has width %d, want %d", ErrBadGrid, i, len(row), w)
		}
		for j := 0; j < len(row); j++ {
			switch Tile(row[j]) {
			case TileEmpty, TileSolid, TileSlopeUpRight, TileSlopeUpLeft, TileOneWay, TileVisionBlocker:
			default:
				return fmt.Errorf("%w: unknown tile %q at row %d col %d", ErrBadGrid, row[j], i, j)
			}
		}
	}
	return nil
}

// Entity returns the first placement of type typ.
func (l *Level) Entity(typ string) (Entity, bool) {
	for _, e := range l.Entities {
		if e.Type == typ {
			return e, true
		}
	}
	return Entity{}, false
}

// Load reads a level from levels/ on disk when present, else the embedded copy.
func Load(name string) (*Level, error) {
	data, err := os.ReadFile(filepath.Join("levels", name))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, name)
		if err != nil {
			return nil, fmt.Errorf("read level: %w", err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}
