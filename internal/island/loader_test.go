package island

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validIslandYAML = `dock_room_id: 3
name: Windward Isle
description: A small test island.
`

const validSpawnYAML = `entity_type: npc_basic
room_id: 3
grid_index: 12
properties:
  faction: merchants
`

func writeContent(t *testing.T, base, rel, body string) {
	t.Helper()
	full := filepath.Join(base, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
}

func TestLoadIslandConfig_Success(t *testing.T) {
	base := t.TempDir()
	writeContent(t, base, "island.yaml", validIslandYAML)
	st := NewState(base)

	require.NoError(t, st.LoadIslandConfig("island.yaml"))

	cfg, ok := st.Config()
	require.True(t, ok)
	assert.Equal(t, RoomID(3), cfg.DockRoomID)
	assert.Equal(t, "Windward Isle", cfg.Name)
}

func TestLoadIslandConfig_SubdirectoryPathAllowed(t *testing.T) {
	base := t.TempDir()
	writeContent(t, base, filepath.Join("config", "island.yaml"), validIslandYAML)
	st := NewState(base)

	assert.NoError(t, st.LoadIslandConfig("config/island.yaml"))
}

func TestLoadIslandConfig_MissingFileKeepsPriorConfig(t *testing.T) {
	base := t.TempDir()
	writeContent(t, base, "island.yaml", validIslandYAML)
	st := NewState(base)
	require.NoError(t, st.LoadIslandConfig("island.yaml"))

	err := st.LoadIslandConfig("missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml", "error reports the requested path")

	cfg, ok := st.Config()
	require.True(t, ok, "failed load must not discard the previous config")
	assert.Equal(t, "Windward Isle", cfg.Name)
}

func TestLoadIslandConfig_MalformedFileKeepsPriorConfig(t *testing.T) {
	base := t.TempDir()
	writeContent(t, base, "island.yaml", validIslandYAML)
	writeContent(t, base, "broken.yaml", "dock_room_id: [not a number\n")
	st := NewState(base)
	require.NoError(t, st.LoadIslandConfig("island.yaml"))

	require.Error(t, st.LoadIslandConfig("broken.yaml"))
	cfg, ok := st.Config()
	require.True(t, ok)
	assert.Equal(t, RoomID(3), cfg.DockRoomID)
}

func TestLoadIslandConfig_TraversalRejectedWithoutFileAccess(t *testing.T) {
	st := NewState(t.TempDir())

	err := st.LoadIslandConfig("../../etc/passwd")
	require.Error(t, err)
	_, ok := st.Config()
	assert.False(t, ok)
}

func TestLoadIslandConfig_AbsolutePathRejected(t *testing.T) {
	base := t.TempDir()
	writeContent(t, base, "island.yaml", validIslandYAML)
	st := NewState(base)

	assert.Error(t, st.LoadIslandConfig(filepath.Join(base, "island.yaml")))
}

func TestRegisterRoomFile_ReturnsRoomID(t *testing.T) {
	base := t.TempDir()
	writeContent(t, base, "rooms/dock.yaml", validRoomYAML)
	st := NewState(base)

	id, err := st.RegisterRoomFile("rooms/dock.yaml")
	require.NoError(t, err)
	assert.Equal(t, RoomID(1), id)
	assert.Equal(t, 1, st.RoomCount())
}

func TestRegisterRoomFile_DuplicateIDAppends(t *testing.T) {
	base := t.TempDir()
	writeContent(t, base, "rooms/dock.yaml", validRoomYAML)
	st := NewState(base)

	for i := 0; i < 2; i++ {
		_, err := st.RegisterRoomFile("rooms/dock.yaml")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, st.RoomCount())
}

func TestRegisterRoomFile_MalformedLeavesStateUnchanged(t *testing.T) {
	base := t.TempDir()
	writeContent(t, base, "rooms/bad.yaml", "room_id: {{\n")
	st := NewState(base)

	_, err := st.RegisterRoomFile("rooms/bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rooms/bad.yaml")
	assert.Zero(t, st.RoomCount())
}

func TestLoadEntitySpawnFile_Accumulates(t *testing.T) {
	base := t.TempDir()
	writeContent(t, base, "spawns/merchant.yaml", validSpawnYAML)
	st := NewState(base)

	require.NoError(t, st.LoadEntitySpawnFile("spawns/merchant.yaml"))
	require.NoError(t, st.LoadEntitySpawnFile("spawns/merchant.yaml"))

	require.Equal(t, 2, st.SpawnCount())
	spawns := st.Spawns()
	assert.Equal(t, "npc_basic", spawns[0].EntityType)
	assert.Equal(t, "merchants", spawns[0].Properties["faction"])
}

func TestRegisterGLTFFile_ResolvesUnderBase(t *testing.T) {
	base := t.TempDir()
	st := NewState(base)

	require.NoError(t, st.RegisterGLTFFile("character", "models/character.gltf"))

	p, ok := st.GLTFPath("character")
	require.True(t, ok)
	assert.True(t, filepath.IsAbs(p))
	assert.Contains(t, p, "character.gltf")
}

func TestRegisterGLTFFile_InvalidNameRejected(t *testing.T) {
	st := NewState(t.TempDir())

	for _, name := range []string{"", ".", "..", "a/b", "a\\b", "a\x00b"} {
		err := st.RegisterGLTFFile(name, "models/character.gltf")
		assert.Error(t, err, "name %q", name)
		assert.Contains(t, err.Error(), "invalid gltf name")
	}
	assert.Zero(t, st.GLTFCount())
}

func TestRegisterGLTFFile_TraversalPathRejected(t *testing.T) {
	st := NewState(t.TempDir())

	err := st.RegisterGLTFFile("character", "../outside/character.gltf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid gltf path")
	assert.Zero(t, st.GLTFCount())
}
