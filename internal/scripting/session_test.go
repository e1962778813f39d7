package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/isleforge/internal/scripting"
)

func TestNewSession_UniqueIDs(t *testing.T) {
	logger := zaptest.NewLogger(t)
	a := scripting.NewSession(t.TempDir(), 0, logger)
	defer a.Close()
	b := scripting.NewSession(t.TempDir(), 0, logger)
	defer b.Close()

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSession_RunFile(t *testing.T) {
	base := contentDir(t)
	script := filepath.Join(base, "island.lua")
	require.NoError(t, os.WriteFile(script, []byte(`
		island:set_tile_layers({"Floor"})
		island:load_island_config("island.yaml")
	`), 0o644))

	s := scripting.NewSession(base, 0, zaptest.NewLogger(t))
	defer s.Close()

	require.NoError(t, s.RunFile(script))
	_, ok := s.State().Config()
	assert.True(t, ok)
}

func TestSession_RunFile_MissingScript(t *testing.T) {
	s := newTestSession(t)

	err := s.RunFile(filepath.Join(s.State().BasePath(), "nope.lua"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.lua")
}

func TestSession_InstructionLimit(t *testing.T) {
	s := scripting.NewSession(t.TempDir(), 25, zaptest.NewLogger(t))
	defer s.Close()

	assert.Error(t, s.RunString(`while true do end`))
}

func TestSession_CallProcess_NoCallbackIsNoOp(t *testing.T) {
	s := newTestSession(t)

	assert.NoError(t, s.CallProcess(0.016))
	assert.NoError(t, s.CallPhysicsProcess(0.016))
	assert.NoError(t, s.CallRoomProcess(1, 0.016))
	assert.NoError(t, s.CallRoomPhysicsProcess(1, 0.016))
}

func TestSession_CallProcess_PassesDelta(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.RunString(`
		island:register_process_fn(function(delta) last_delta = delta end)
	`))
	require.NoError(t, s.CallProcess(0.25))
	require.NoError(t, s.RunString(`assert(last_delta == 0.25, "delta not forwarded")`))
}

func TestSession_CallbackErrorSurfacesButSessionSurvives(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.RunString(`
		island:register_process_fn(function(delta) error("callback boom") end)
	`))
	err := s.CallProcess(0.016)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "callback boom")

	assert.NoError(t, s.RunString(`local x = 1`))
}

func TestSession_RoomCallbacksKeyedByID(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.RunString(`
		island:register_room("rooms/dock.yaml", {
			physics_process = function(delta) dock_physics = (dock_physics or 0) + 1 end,
		})
	`))

	require.NoError(t, s.CallRoomPhysicsProcess(1, 0.016))
	require.NoError(t, s.CallRoomPhysicsProcess(1, 0.016))
	require.NoError(t, s.CallRoomPhysicsProcess(2, 0.016))
	require.NoError(t, s.RunString(`assert(dock_physics == 2, "expected 2 physics ticks, got " .. tostring(dock_physics))`))
}

func TestSession_StateReadableAfterClose(t *testing.T) {
	s := scripting.NewSession(contentDir(t), 0, zaptest.NewLogger(t))
	require.NoError(t, s.RunString(`island:set_tile_layers({"Floor"})`))
	s.Close()

	assert.Equal(t, []string{"Floor"}, s.State().TileLayers())
}
