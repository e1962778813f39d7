// Package island provides the authored island data model: islands, rooms,
// tiles, entity spawns, and field schemas, plus the room-adjacency and grid
// construction engine. All types here are plain serializable data; script
// callback references live in the scripting package, never in these structs.
package island

import (
	"fmt"
	"strconv"
	"strings"
)

// RoomID uniquely identifies a room within an island.
type RoomID uint32

// PaletteIndex references an external model by position in the GLTF palette.
type PaletteIndex uint32

// GridIndex is a linear cell index into a room's tile grid
// (x + y*extentX + z*extentX*extentY).
type GridIndex int

// Island is the top-level authored identity for one playable area.
// It is replaced wholesale when a new config file is loaded.
type Island struct {
	// DockRoomID is the canonical entry room.
	DockRoomID  RoomID `yaml:"dock_room_id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Room is an axis-aligned 3D volume of tiles occupying the half-open box
// [pos, pos+extent) per axis.
type Room struct {
	RoomID RoomID `yaml:"room_id"`
	// World position, used for adjacency checks.
	PosX int64 `yaml:"pos_x"`
	PosY int64 `yaml:"pos_y"`
	PosZ int64 `yaml:"pos_z"`
	// Grid extents.
	ExtentX uint32 `yaml:"extent_x"`
	ExtentY uint32 `yaml:"extent_y"`
	ExtentZ uint32 `yaml:"extent_z"`
	// Per-axis looping.
	LoopingX bool `yaml:"looping_x"`
	LoopingY bool `yaml:"looping_y"`
	LoopingZ bool `yaml:"looping_z"`
	// Sparse tile data; cells not present are empty.
	Tiles map[GridIndex]TileData `yaml:"tiles"`
}

// EntitySpawn places one entity of a script-defined type in a room.
// Property semantics are defined entirely by registered entity fields;
// the engine never interprets the values.
type EntitySpawn struct {
	EntityType string            `yaml:"entity_type"`
	RoomID     RoomID            `yaml:"room_id"`
	GridIndex  GridIndex         `yaml:"grid_index"`
	Properties map[string]string `yaml:"properties"`
}

// TileKind discriminates the TileData variant.
type TileKind uint8

// Tile variants. A door connects to another room explicitly and requires no
// geometric adjacency.
const (
	TileNone TileKind = iota
	TileModel
	TileDoor
)

// TileData is one cell of a room's grid. Equality is structural: two
// TileData values compare equal with == exactly when they represent the
// same variant and payload.
type TileData struct {
	Kind    TileKind
	Palette PaletteIndex
	// Target is the destination room for TileDoor. Zero otherwise.
	Target RoomID
}

// EmptyTile returns the empty cell value.
func EmptyTile() TileData { return TileData{} }

// ModelTile returns a tile referencing a palette entry.
func ModelTile(palette PaletteIndex) TileData {
	return TileData{Kind: TileModel, Palette: palette}
}

// DoorTile returns a door tile linking to target.
func DoorTile(palette PaletteIndex, target RoomID) TileData {
	return TileData{Kind: TileDoor, Palette: palette, Target: target}
}

// String renders the tile in its serialized scalar form:
// "None", "Tile(3)", or "Door(1, 2)".
func (t TileData) String() string {
	switch t.Kind {
	case TileModel:
		return fmt.Sprintf("Tile(%d)", t.Palette)
	case TileDoor:
		return fmt.Sprintf("Door(%d, %d)", t.Palette, t.Target)
	default:
		return "None"
	}
}

// ParseTileData parses the serialized scalar form produced by String.
// Whitespace inside the parentheses is insignificant.
func ParseTileData(s string) (TileData, error) {
	compact := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	switch {
	case compact == "None":
		return TileData{}, nil
	case strings.HasPrefix(compact, "Tile(") && strings.HasSuffix(compact, ")"):
		palette, err := parsePalette(compact[len("Tile(") : len(compact)-1])
		if err != nil {
			return TileData{}, fmt.Errorf("parsing tile %q: %w", s, err)
		}
		return ModelTile(palette), nil
	case strings.HasPrefix(compact, "Door(") && strings.HasSuffix(compact, ")"):
		args := strings.Split(compact[len("Door(") : len(compact)-1], ",")
		if len(args) != 2 {
			return TileData{}, fmt.Errorf("parsing tile %q: door takes palette and target", s)
		}
		palette, err := parsePalette(args[0])
		if err != nil {
			return TileData{}, fmt.Errorf("parsing tile %q: %w", s, err)
		}
		target, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return TileData{}, fmt.Errorf("parsing tile %q: bad target room: %w", s, err)
		}
		return DoorTile(palette, RoomID(target)), nil
	default:
		return TileData{}, fmt.Errorf("parsing tile %q: expected None, Tile(i), or Door(i, room)", s)
	}
}

func parsePalette(s string) (PaletteIndex, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad palette index: %w", err)
	}
	return PaletteIndex(n), nil
}

// MarshalYAML encodes the tile in its scalar form.
func (t TileData) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML decodes the scalar form.
func (t *TileData) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseTileData(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// bounds returns the room's half-open interval [min, max) on each axis,
// ordered X, Y, Z.
func (r *Room) bounds() (min, max [3]int64) {
	min = [3]int64{r.PosX, r.PosY, r.PosZ}
	max = [3]int64{
		r.PosX + int64(r.ExtentX),
		r.PosY + int64(r.ExtentY),
		r.PosZ + int64(r.ExtentZ),
	}
	return min, max
}

// AreAdjacent reports whether two rooms physically share a face. On some
// axis the boxes must touch exactly while their projections on both other
// axes overlap with positive measure; touching corners or edges does not
// count. Door tiles are ignored entirely: doors are an explicit,
// non-geometric connection mechanism.
func AreAdjacent(a, b *Room) bool {
	aMin, aMax := a.bounds()
	bMin, bMax := b.bounds()

	for axis := 0; axis < 3; axis++ {
		if aMax[axis] != bMin[axis] && bMax[axis] != aMin[axis] {
			continue
		}
		u, v := (axis+1)%3, (axis+2)%3
		if overlaps(aMin[u], aMax[u], bMin[u], bMax[u]) &&
			overlaps(aMin[v], aMax[v], bMin[v], bMax[v]) {
			return true
		}
	}
	return false
}

// overlaps reports strict positive-measure overlap of two half-open intervals.
func overlaps(aMin, aMax, bMin, bMax int64) bool {
	return aMax > bMin && bMax > aMin
}
