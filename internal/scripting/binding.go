package scripting

import (
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/isleforge/internal/island"
)

const islandTypeName = "island"

// Binding is the single object surface reachable from the embedded
// interpreter. It wraps the shared island state and dispatches every
// authoring call; script callback references are kept here in side tables,
// keyed by room id, so the domain structs stay independently serializable.
//
// A room-level callback is intended to replace the global one when present,
// but resolving that precedence is the consumer's responsibility; the
// binding only preserves the raw registrations.
type Binding struct {
	state  *island.State
	logger *zap.Logger

	mu             sync.Mutex
	processFn      *lua.LFunction
	physicsFn      *lua.LFunction
	roomProcessFns map[island.RoomID]*lua.LFunction
	roomPhysicsFns map[island.RoomID]*lua.LFunction
}

// NewBinding creates a Binding over state.
//
// Precondition: state and logger must be non-nil.
func NewBinding(state *island.State, logger *zap.Logger) *Binding {
	return &Binding{
		state:          state,
		logger:         logger,
		roomProcessFns: make(map[island.RoomID]*lua.LFunction),
		roomPhysicsFns: make(map[island.RoomID]*lua.LFunction),
	}
}

// Install registers the binding into L as the global "island" userdata.
//
// Precondition: L must be from NewSandboxedState.
func (b *Binding) Install(L *lua.LState) {
	mt := L.NewTypeMetatable(islandTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), islandMethods))
	ud := L.NewUserData()
	ud.Value = b
	L.SetMetatable(ud, mt)
	L.SetGlobal(islandTypeName, ud)
}

// State returns the wrapped island state container.
func (b *Binding) State() *island.State { return b.state }

// ProcessFn returns the global process callback, or nil.
func (b *Binding) ProcessFn() *lua.LFunction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.processFn
}

// PhysicsProcessFn returns the global physics-process callback, or nil.
func (b *Binding) PhysicsProcessFn() *lua.LFunction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.physicsFn
}

// RoomProcessFn returns the process callback registered for a room, or nil.
func (b *Binding) RoomProcessFn(id island.RoomID) *lua.LFunction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.roomProcessFns[id]
}

// RoomPhysicsProcessFn returns the physics-process callback registered for
// a room, or nil.
func (b *Binding) RoomPhysicsProcessFn(id island.RoomID) *lua.LFunction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.roomPhysicsFns[id]
}

var islandMethods = map[string]lua.LGFunction{
	"set_tile_layers":             islandSetTileLayers,
	"set_entity_layers":           islandSetEntityLayers,
	"register_tile_field":         islandRegisterTileField,
	"register_entity_field":       islandRegisterEntityField,
	"load_island_config":          islandLoadIslandConfig,
	"load_entity_spawn":           islandLoadEntitySpawn,
	"register_process_fn":         islandRegisterProcessFn,
	"register_physics_process_fn": islandRegisterPhysicsProcessFn,
	"register_room":               islandRegisterRoom,
	"register_gltf":               islandRegisterGLTF,
	"get_room_count":              islandGetRoomCount,
	"get_entity_spawn_count":      islandGetEntitySpawnCount,
	"rooms_are_adjacent":          islandRoomsAreAdjacent,
}

func checkBinding(L *lua.LState) *Binding {
	ud := L.CheckUserData(1)
	if b, ok := ud.Value.(*Binding); ok {
		return b
	}
	L.ArgError(1, "island object expected")
	return nil
}

// checkStringSeq reads a Lua sequence of strings. A non-string element is a
// runtime error; layer lists are not parsed permissively.
func checkStringSeq(L *lua.LState, idx int, op string) []string {
	tbl := L.CheckTable(idx)
	var out []string
	for i := 1; ; i++ {
		v := tbl.RawGetInt(i)
		if v == lua.LNil {
			break
		}
		s, ok := v.(lua.LString)
		if !ok {
			L.RaiseError("%s: element %d: string expected, got %s", op, i, v.Type().String())
		}
		out = append(out, string(s))
	}
	return out
}

func islandSetTileLayers(L *lua.LState) int {
	b := checkBinding(L)
	b.state.SetTileLayers(checkStringSeq(L, 2, "set_tile_layers"))
	return 0
}

func islandSetEntityLayers(L *lua.LState) int {
	b := checkBinding(L)
	b.state.SetEntityLayers(checkStringSeq(L, 2, "set_entity_layers"))
	return 0
}

func islandRegisterTileField(L *lua.LState) int {
	b := checkBinding(L)
	kind := L.CheckString(2)
	reg := island.FieldRegistration{
		FieldName: L.CheckString(3),
		FieldType: L.CheckString(4),
		Options:   parseFieldOptions(L.CheckTable(5)),
	}
	b.state.AddTileField(kind, reg)
	return 0
}

func islandRegisterEntityField(L *lua.LState) int {
	b := checkBinding(L)
	kind := L.CheckString(2)
	reg := island.FieldRegistration{
		FieldName: L.CheckString(3),
		FieldType: L.CheckString(4),
		Options:   parseFieldOptions(L.CheckTable(5)),
	}
	b.state.AddEntityField(kind, reg)
	return 0
}

func islandLoadIslandConfig(L *lua.LState) int {
	b := checkBinding(L)
	path := L.CheckString(2)
	if err := b.state.LoadIslandConfig(path); err != nil {
		L.RaiseError("load_island_config: %s", err.Error())
	}
	b.logger.Debug("island config loaded", zap.String("path", path))
	return 0
}

func islandLoadEntitySpawn(L *lua.LState) int {
	b := checkBinding(L)
	path := L.CheckString(2)
	if err := b.state.LoadEntitySpawnFile(path); err != nil {
		L.RaiseError("load_entity_spawn: %s", err.Error())
	}
	return 0
}

func islandRegisterProcessFn(L *lua.LState) int {
	b := checkBinding(L)
	fn := L.CheckFunction(2)
	b.mu.Lock()
	b.processFn = fn
	b.mu.Unlock()
	return 0
}

func islandRegisterPhysicsProcessFn(L *lua.LState) int {
	b := checkBinding(L)
	fn := L.CheckFunction(2)
	b.mu.Lock()
	b.physicsFn = fn
	b.mu.Unlock()
	return 0
}

func islandRegisterRoom(L *lua.LState) int {
	b := checkBinding(L)
	path := L.CheckString(2)
	opts := L.CheckTable(3)

	// Pull callbacks out of the options before touching the state so a bad
	// options table leaves no partial registration behind.
	processFn := optFunction(L, opts, "process", "register_room")
	physicsFn := optFunction(L, opts, "physics_process", "register_room")

	id, err := b.state.RegisterRoomFile(path)
	if err != nil {
		L.RaiseError("register_room: %s", err.Error())
	}

	b.mu.Lock()
	if processFn != nil {
		b.roomProcessFns[id] = processFn
	}
	if physicsFn != nil {
		b.roomPhysicsFns[id] = physicsFn
	}
	b.mu.Unlock()

	b.logger.Debug("room registered",
		zap.String("path", path),
		zap.Uint32("room_id", uint32(id)),
	)
	return 0
}

func islandRegisterGLTF(L *lua.LState) int {
	b := checkBinding(L)
	name := L.CheckString(2)
	path := L.CheckString(3)
	if err := b.state.RegisterGLTFFile(name, path); err != nil {
		L.RaiseError("register_gltf: %s", err.Error())
	}
	return 0
}

func islandGetRoomCount(L *lua.LState) int {
	b := checkBinding(L)
	L.Push(lua.LNumber(b.state.RoomCount()))
	return 1
}

func islandGetEntitySpawnCount(L *lua.LState) int {
	b := checkBinding(L)
	L.Push(lua.LNumber(b.state.SpawnCount()))
	return 1
}

func islandRoomsAreAdjacent(L *lua.LState) int {
	b := checkBinding(L)
	roomA := island.RoomID(L.CheckInt(2))
	roomB := island.RoomID(L.CheckInt(3))

	data := b.state.MechanicsData()
	if data == nil {
		L.RaiseError("rooms_are_adjacent: island config not loaded")
	}
	L.Push(lua.LBool(data.RoomsAreAdjacent(roomA, roomB)))
	return 1
}

// optFunction reads an optional function-valued key from a table. A present
// non-function value is a runtime error.
func optFunction(L *lua.LState, tbl *lua.LTable, key, op string) *lua.LFunction {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return nil
	}
	fn, ok := v.(*lua.LFunction)
	if !ok {
		L.RaiseError("%s: %s must be a function, got %s", op, key, v.Type().String())
	}
	return fn
}
