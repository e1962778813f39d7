package island

import (
	"fmt"
	"os"

	"github.com/cory-johannsen/isleforge/internal/pathsec"
)

// The content loader turns a script-supplied relative path into a domain
// entity and merges it into the state. Paths are validated against the
// session base directory before any file access; validation, the
// synchronous read, and the merge all happen under the state lock, so a
// load is atomic from the point of view of concurrent host readers.
// Error messages carry the path the script asked for, not the resolved one.

// LoadIslandConfig reads, parses, and installs an island config, replacing
// any previously loaded config. On any failure the previous config is left
// untouched.
func (s *State) LoadIslandConfig(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	full, err := pathsec.ValidatePath(path, s.basePath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return fmt.Errorf("reading island config %s: %w", path, err)
	}
	isl, err := DecodeIsland(data)
	if err != nil {
		return fmt.Errorf("island config %s: %w", path, err)
	}

	s.config = &isl
	return nil
}

// RegisterRoomFile reads, parses, and appends one room, returning its id so
// the caller can associate callback references with it. Duplicate room ids
// append a duplicate entry.
func (s *State) RegisterRoomFile(path string) (RoomID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	full, err := pathsec.ValidatePath(path, s.basePath)
	if err != nil {
		return 0, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return 0, fmt.Errorf("reading room file %s: %w", path, err)
	}
	room, err := DecodeRoom(data)
	if err != nil {
		return 0, fmt.Errorf("room file %s: %w", path, err)
	}

	s.rooms = append(s.rooms, room)
	return room.RoomID, nil
}

// LoadEntitySpawnFile reads, parses, and appends one entity spawn. Multiple
// calls accumulate independent spawns; there is no uniqueness constraint.
func (s *State) LoadEntitySpawnFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	full, err := pathsec.ValidatePath(path, s.basePath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return fmt.Errorf("reading entity spawn %s: %w", path, err)
	}
	spawn, err := DecodeSpawn(data)
	if err != nil {
		return fmt.Errorf("entity spawn %s: %w", path, err)
	}

	s.spawns = append(s.spawns, spawn)
	return nil
}

// RegisterGLTFFile validates a model name and path and inserts the
// name to resolved path mapping, overwriting any prior entry for the name.
func (s *State) RegisterGLTFFile(name, path string) error {
	if err := pathsec.ValidateFilename(name); err != nil {
		return fmt.Errorf("invalid gltf name: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	full, err := pathsec.ValidatePath(path, s.basePath)
	if err != nil {
		return fmt.Errorf("invalid gltf path: %w", err)
	}
	s.gltf[name] = full
	return nil
}
