package island

import "sync"

// State is the single mutable authoring aggregate for one sandbox session.
// It is mutated exclusively through the scripting host binding and read by
// host-side queries that may run on other threads; one coarse mutex guards
// the whole aggregate. No method holds the lock across anything but its own
// work, and no method calls another locking method (no nested acquisition).
//
// Rooms and entity spawns are append-only for the life of the session.
// Re-registering a room with a duplicate id appends a duplicate entry; this
// is a documented caveat for consumers, not deduplicated here.
type State struct {
	mu sync.Mutex

	basePath     string
	tileLayers   []string
	entityLayers []string
	tileFields   map[string][]FieldRegistration
	entityFields map[string][]FieldRegistration
	config       *Island
	rooms        []Room
	spawns       []EntitySpawn
	gltf         map[string]string
}

// NewState creates an empty State whose content files resolve against
// basePath.
func NewState(basePath string) *State {
	return &State{
		basePath:     basePath,
		tileFields:   make(map[string][]FieldRegistration),
		entityFields: make(map[string][]FieldRegistration),
		gltf:         make(map[string]string),
	}
}

// BasePath returns the session's content base directory.
func (s *State) BasePath() string { return s.basePath }

// SetTileLayers replaces the ordered tile layer list wholesale.
func (s *State) SetTileLayers(layers []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tileLayers = append([]string(nil), layers...)
}

// SetEntityLayers replaces the ordered entity layer list wholesale.
func (s *State) SetEntityLayers(layers []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entityLayers = append([]string(nil), layers...)
}

// TileLayers returns a copy of the ordered tile layer list.
func (s *State) TileLayers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tileLayers...)
}

// EntityLayers returns a copy of the ordered entity layer list.
func (s *State) EntityLayers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.entityLayers...)
}

// AddTileField appends a field registration for a tile kind, creating the
// kind's sequence if absent. Registration order is preserved.
func (s *State) AddTileField(kind string, reg FieldRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tileFields[kind] = append(s.tileFields[kind], reg)
}

// AddEntityField appends a field registration for an entity kind.
func (s *State) AddEntityField(kind string, reg FieldRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entityFields[kind] = append(s.entityFields[kind], reg)
}

// TileFields returns the registrations for a tile kind in registration
// order. The returned slice is a copy.
func (s *State) TileFields(kind string) []FieldRegistration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FieldRegistration(nil), s.tileFields[kind]...)
}

// EntityFields returns the registrations for an entity kind in registration
// order. The returned slice is a copy.
func (s *State) EntityFields(kind string) []FieldRegistration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FieldRegistration(nil), s.entityFields[kind]...)
}

// TileKinds returns the tile kinds that have at least one registration.
func (s *State) TileKinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]string, 0, len(s.tileFields))
	for k := range s.tileFields {
		kinds = append(kinds, k)
	}
	return kinds
}

// EntityKinds returns the entity kinds that have at least one registration.
func (s *State) EntityKinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]string, 0, len(s.entityFields))
	for k := range s.entityFields {
		kinds = append(kinds, k)
	}
	return kinds
}

// SetConfig replaces the loaded island config. Callers replace the config
// only after a fully successful load; a failed load leaves the previous
// config untouched.
func (s *State) SetConfig(isl Island) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = &isl
}

// Config returns the loaded island config, or (zero, false) before the
// first successful load.
func (s *State) Config() (Island, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config == nil {
		return Island{}, false
	}
	return *s.config, true
}

// AppendRoom appends a loaded room. Duplicate ids are kept.
func (s *State) AppendRoom(room Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = append(s.rooms, room)
}

// AppendSpawn appends a loaded entity spawn.
func (s *State) AppendSpawn(spawn EntitySpawn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spawns = append(s.spawns, spawn)
}

// RoomCount returns the number of registered rooms, duplicates included.
func (s *State) RoomCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// SpawnCount returns the number of loaded entity spawns.
func (s *State) SpawnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.spawns)
}

// Rooms returns a copy of the registered room list in registration order.
func (s *State) Rooms() []Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Room(nil), s.rooms...)
}

// Spawns returns a copy of the loaded entity spawn list.
func (s *State) Spawns() []EntitySpawn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]EntitySpawn(nil), s.spawns...)
}

// RegisterGLTF inserts a model name to resolved path mapping, overwriting
// any prior entry for the same name.
func (s *State) RegisterGLTF(name, resolvedPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gltf[name] = resolvedPath
}

// GLTFPath returns the resolved path registered for a model name.
func (s *State) GLTFPath(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.gltf[name]
	return p, ok
}

// GLTFCount returns the number of registered models.
func (s *State) GLTFCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.gltf)
}

// MechanicsData builds a read-only snapshot of the island config and room
// list, or nil if no config has been loaded yet.
func (s *State) MechanicsData() *IslandData {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config == nil {
		return nil
	}
	return NewIslandData(*s.config, append([]Room(nil), s.rooms...))
}
