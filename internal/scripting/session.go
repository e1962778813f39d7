package scripting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/isleforge/internal/island"
)

// Session is one instantiation of the embedded interpreter plus its bound
// island state container. The interpreter runs on exactly one goroutine at
// a time; all Run* and Call* methods must be made from that goroutine. The
// state container, reachable through State, may be read concurrently by
// other goroutines.
type Session struct {
	id      string
	logger  *zap.Logger
	state   *island.State
	binding *Binding
	vm      *lua.LState
	cancel  context.CancelFunc
}

// NewSession creates a sandboxed session whose content files resolve
// against basePath. instLimit caps Lua opcodes per execution; 0 uses
// DefaultInstructionLimit.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a Session ready for RunFile/RunString. The caller
// owns it and must call Close when done.
func NewSession(basePath string, instLimit int, logger *zap.Logger) *Session {
	id := uuid.NewString()
	logger = logger.With(zap.String("session", id))

	state := island.NewState(basePath)
	vm, cancel := NewSandboxedState(instLimit)
	binding := NewBinding(state, logger)
	binding.Install(vm)
	registerEngineModule(vm, logger)

	return &Session{
		id:      id,
		logger:  logger,
		state:   state,
		binding: binding,
		vm:      vm,
		cancel:  cancel,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// State returns the shared island state container.
func (s *Session) State() *island.State { return s.state }

// Binding returns the host binding, including callback registrations.
func (s *Session) Binding() *Binding { return s.binding }

// RunFile executes an authoring script file in the sandbox. Script errors
// are returned, never fatal; the session stays usable afterwards.
func (s *Session) RunFile(path string) error {
	if err := s.vm.DoFile(path); err != nil {
		return fmt.Errorf("running script %s: %w", path, err)
	}
	return nil
}

// RunString executes authoring script source in the sandbox.
func (s *Session) RunString(src string) error {
	if err := s.vm.DoString(src); err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	return nil
}

// CallProcess invokes the global process callback with the frame delta, if
// one is registered. Whether a room-level callback replaces the global one
// is the caller's decision; this invokes exactly what it names.
func (s *Session) CallProcess(delta float64) error {
	return s.call(s.binding.ProcessFn(), delta)
}

// CallPhysicsProcess invokes the global physics-process callback, if any.
func (s *Session) CallPhysicsProcess(delta float64) error {
	return s.call(s.binding.PhysicsProcessFn(), delta)
}

// CallRoomProcess invokes the process callback registered for a room, if any.
func (s *Session) CallRoomProcess(id island.RoomID, delta float64) error {
	return s.call(s.binding.RoomProcessFn(id), delta)
}

// CallRoomPhysicsProcess invokes the physics-process callback registered
// for a room, if any.
func (s *Session) CallRoomPhysicsProcess(id island.RoomID, delta float64) error {
	return s.call(s.binding.RoomPhysicsProcessFn(id), delta)
}

func (s *Session) call(fn *lua.LFunction, delta float64) error {
	if fn == nil {
		return nil
	}
	return s.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(delta))
}

// Close tears down the interpreter. The state container remains readable.
func (s *Session) Close() {
	s.cancel()
	s.vm.Close()
}
