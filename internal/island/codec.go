package island

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Content files are plain YAML documents holding one Island, Room, or
// EntitySpawn each. The format round-trips: decoding the output of an
// Encode* function yields a structurally equal value.

// DecodeIsland parses an island config from YAML bytes.
func DecodeIsland(data []byte) (Island, error) {
	var isl Island
	if err := yaml.Unmarshal(data, &isl); err != nil {
		return Island{}, fmt.Errorf("parsing island config: %w", err)
	}
	return isl, nil
}

// DecodeRoom parses a room from YAML bytes.
func DecodeRoom(data []byte) (Room, error) {
	var room Room
	if err := yaml.Unmarshal(data, &room); err != nil {
		return Room{}, fmt.Errorf("parsing room: %w", err)
	}
	return room, nil
}

// DecodeSpawn parses an entity spawn from YAML bytes.
func DecodeSpawn(data []byte) (EntitySpawn, error) {
	var spawn EntitySpawn
	if err := yaml.Unmarshal(data, &spawn); err != nil {
		return EntitySpawn{}, fmt.Errorf("parsing entity spawn: %w", err)
	}
	return spawn, nil
}

// EncodeIsland serializes an island config to YAML.
func EncodeIsland(isl Island) ([]byte, error) {
	return yaml.Marshal(isl)
}

// EncodeRoom serializes a room to YAML.
func EncodeRoom(room Room) ([]byte, error) {
	return yaml.Marshal(room)
}

// EncodeSpawn serializes an entity spawn to YAML.
func EncodeSpawn(spawn EntitySpawn) ([]byte, error) {
	return yaml.Marshal(spawn)
}
