package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/dice"
)

// RegisterModules registers the arena.* helper table into L.
//
//	arena.attack(name) -> { kind = "attack", target = name }
//	arena.idle()       -> { kind = "idle" }
//	arena.log(msg)     -> logs msg at Debug
//	arena.roll(expr)   -> total of a dice expression such as "2d6+1"
//
// A malformed dice expression raises a Lua error.
//
// Precondition: L must be from NewSandboxedState; roller must be non-nil.
// Postcondition: arena global is defined in L.
func RegisterModules(L *lua.LState, logger *zap.Logger, roller *dice.Roller) {
	arena := L.NewTable()
	L.SetField(arena, "attack", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		t := L.NewTable()
		t.RawSetString("kind", lua.LString(kindAttack))
		t.RawSetString("target", lua.LString(name))
		L.Push(t)
		return 1
	}))
	L.SetField(arena, "idle", L.NewFunction(func(L *lua.LState) int {
		t := L.NewTable()
		t.RawSetString("kind", lua.LString(kindIdle))
		L.Push(t)
		return 1
	}))
	L.SetField(arena, "log", L.NewFunction(func(L *lua.LState) int {
		logger.Debug("script", zap.String("message", L.CheckString(1)))
		return 0
	}))
	L.SetField(arena, "roll", L.NewFunction(func(L *lua.LState) int {
		res, err := roller.RollExpr(L.CheckString(1))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lua.LNumber(res.Total()))
		return 1
	}))
	L.SetGlobal("arena", arena)
}
