// Package scripting hosts sandboxed GopherLua sessions for island authoring
// scripts. Each session binds one island state container into the VM as the
// global "island" object; every authoring operation funnels through that
// binding. The interpreter itself is single-threaded, but the bound state
// container is safe for concurrent host reads.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit caps Lua opcodes per script execution when the
// session does not configure its own limit.
const DefaultInstructionLimit = 100_000

// opcodeBudget is a context.Context whose Done() cancels itself after being
// polled a fixed number of times. GopherLua polls Done() once per opcode,
// which turns the budget into an exact, deterministic instruction limit.
type opcodeBudget struct {
	context.Context
	cancel    context.CancelFunc
	remaining atomic.Int64
}

func (b *opcodeBudget) Done() <-chan struct{} {
	if b.remaining.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

func newOpcodeBudget(limit int) (context.Context, context.CancelFunc) {
	base, cancel := context.WithCancel(context.Background())
	b := &opcodeBudget{Context: base, cancel: cancel}
	b.remaining.Store(int64(limit))
	return b, cancel
}

// NewSandboxedState creates a GopherLua state with only the safe standard
// libraries (base, table, string, math), the dangerous base globals
// removed, and execution limited to instLimit opcodes (0 means
// DefaultInstructionLimit).
//
// The caller owns the state and must call the returned cancel func and
// L.Close when done.
func NewSandboxedState(instLimit int) (*lua.LState, context.CancelFunc) {
	limit := instLimit
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// OpenBase leaves file and chunk loading entry points behind; strip them.
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	ctx, cancel := newOpcodeBudget(limit)
	L.SetContext(ctx)

	return L, cancel
}
