package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// registerEngineModule registers the engine.* Lua tables into L. Scripts
// get structured logging at the host's log levels via engine.log; messages
// are tagged with the session id.
func registerEngineModule(L *lua.LState, logger *zap.Logger) {
	engine := L.NewTable()

	logTbl := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": logger.Debug,
		"info":  logger.Info,
		"warn":  logger.Warn,
		"error": logger.Error,
	}
	for name, logFn := range levels {
		logFn := logFn
		L.SetField(logTbl, name, L.NewFunction(func(L *lua.LState) int {
			logFn(L.CheckString(1), zap.String("origin", "script"))
			return 0
		}))
	}
	L.SetField(engine, "log", logTbl)

	L.SetGlobal("engine", engine)
}
