// Package lualib exposes luapat to gopher-lua scripts.
//
// The module table provides find, match, gmatch and gsub with the argument
// conventions of Lua's string library, plus an optional governor argument
// after the usual ones:
//
//	luapat.find(s, p [, init [, plain [, gov [, steps]]]])
//	luapat.match(s, p [, init [, gov [, steps]]])
//	luapat.gmatch(s, p [, init [, gov [, steps]]])
//	luapat.gsub(s, p, repl [, n [, gov [, steps]]])
//
// gov is either a function, called every steps matching steps with the
// cumulative step count (a truthy result stops the match), or a number of
// nanoseconds after which the match is aborted. steps defaults to the engine's
// step threshold.
//
// Usage from Go:
//
//	L := lua.NewState()
//	defer L.Close()
//	lualib.Open(L, "")
//	L.DoString(`print(luapat.gsub("hello world", "o", "0"))`)
package lualib

import (
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/coregx/luapat"
	"github.com/coregx/luapat/internal/conv"
)

// DefaultName is the global and module name used when none is given.
const DefaultName = "luapat"

// Module binds an Engine to Lua states.
type Module struct {
	engine *luapat.Engine
}

// NewModule creates a module backed by engine. A nil engine uses
// luapat.DefaultConfig.
func NewModule(engine *luapat.Engine) *Module {
	if engine == nil {
		engine = luapat.MustNew(luapat.DefaultConfig())
	}
	return &Module{engine: engine}
}

var defaultModule = NewModule(nil)

// Open registers the default module as the global table name
// (DefaultName when empty).
func Open(L *lua.LState, name string) {
	defaultModule.Register(L, name)
}

// Loader is a gopher-lua module loader for L.PreloadModule.
func Loader(L *lua.LState) int {
	return defaultModule.Loader(L)
}

// Register sets the module table as the global name (DefaultName when empty).
func (m *Module) Register(L *lua.LState, name string) {
	if name == "" {
		name = DefaultName
	}
	L.SetGlobal(name, m.Table(L))
}

// Loader pushes the module table; use it with L.PreloadModule.
func (m *Module) Loader(L *lua.LState) int {
	L.Push(m.Table(L))
	return 1
}

// Table builds a new module table.
func (m *Module) Table(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "find", L.NewFunction(m.find))
	L.SetField(mod, "match", L.NewFunction(m.match))
	L.SetField(mod, "gmatch", L.NewFunction(m.gmatch))
	L.SetField(mod, "gsub", L.NewFunction(m.gsub))
	return mod
}

// find(s, p [, init [, plain [, gov [, steps]]]]) -> start, end, captures... | nil
func (m *Module) find(L *lua.LState) int {
	s := L.CheckString(1)
	p := L.CheckString(2)
	opts := []luapat.Option{luapat.WithInit(optInt(L, 3, 1))}
	if plain, ok := L.Get(4).(lua.LBool); ok && bool(plain) {
		opts = append(opts, luapat.WithPlain())
	}
	opts = append(opts, governorOptions(L, 5)...)

	r, err := m.engine.Find(s, p, opts...)
	if err != nil {
		raise(L, err)
		return 0
	}
	if r == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(r.Start))
	L.Push(lua.LNumber(r.End))
	return 2 + pushCaptures(L, r.Captures)
}

// match(s, p [, init [, gov [, steps]]]) -> captures... | nil
func (m *Module) match(L *lua.LState) int {
	s := L.CheckString(1)
	p := L.CheckString(2)
	opts := append([]luapat.Option{luapat.WithInit(optInt(L, 3, 1))}, governorOptions(L, 4)...)

	caps, err := m.engine.Match(s, p, opts...)
	if err != nil {
		raise(L, err)
		return 0
	}
	if caps == nil {
		L.Push(lua.LNil)
		return 1
	}
	return pushCaptures(L, caps)
}

// gmatch(s, p [, init [, gov [, steps]]]) -> iterator
func (m *Module) gmatch(L *lua.LState) int {
	s := L.CheckString(1)
	p := L.CheckString(2)
	opts := append([]luapat.Option{luapat.WithInit(optInt(L, 3, 1))}, governorOptions(L, 4)...)

	it := m.engine.GMatch(s, p, opts...)
	L.Push(L.NewFunction(func(L *lua.LState) int {
		caps, ok, err := it.Next()
		if err != nil {
			raise(L, err)
			return 0
		}
		if !ok {
			return 0
		}
		return pushCaptures(L, caps)
	}))
	return 1
}

// gsub(s, p, repl [, n [, gov [, steps]]]) -> string, count
func (m *Module) gsub(L *lua.LState) int {
	s := L.CheckString(1)
	p := L.CheckString(2)
	repl := replacement(L, 3)

	var opts []luapat.Option
	if L.Get(4) != lua.LNil {
		opts = append(opts, luapat.WithMaxReplacements(optInt(L, 4, len(s)+1)))
	}
	opts = append(opts, governorOptions(L, 5)...)

	out, n, err := m.engine.GSub(s, p, repl, opts...)
	if err != nil {
		raise(L, err)
		return 0
	}
	L.Push(lua.LString(out))
	L.Push(lua.LNumber(n))
	return 2
}

// replacement converts the gsub repl argument.
func replacement(L *lua.LState, n int) luapat.Replacement {
	switch v := L.Get(n).(type) {
	case lua.LString:
		return luapat.Template(string(v))
	case lua.LNumber:
		return luapat.Template(v.String())
	case *lua.LTable:
		return luapat.Func(func(caps []luapat.Capture) (string, bool, error) {
			return replacementValue(L.GetTable(v, captureValue(caps[0])))
		})
	case *lua.LFunction:
		return luapat.Func(func(caps []luapat.Capture) (string, bool, error) {
			L.Push(v)
			for _, c := range caps {
				L.Push(captureValue(c))
			}
			L.Call(len(caps), 1)
			ret := L.Get(-1)
			L.Pop(1)
			return replacementValue(ret)
		})
	default:
		L.ArgError(n, "string/function/table expected, got "+L.Get(n).Type().String())
		return nil
	}
}

// replacementValue interprets the value returned by a table lookup or a
// replacement function. nil and false keep the match text.
func replacementValue(v lua.LValue) (string, bool, error) {
	switch v := v.(type) {
	case lua.LString:
		return string(v), true, nil
	case lua.LNumber:
		return v.String(), true, nil
	}
	if !lua.LVAsBool(v) {
		return "", false, nil
	}
	return "", false, &luapat.Error{
		Kind:    luapat.InvalidReplacement,
		Message: "invalid replacement value (a " + v.Type().String() + ")",
	}
}

// governorOptions reads the optional governor argument at n and the step
// stride at n+1.
func governorOptions(L *lua.LState, n int) []luapat.Option {
	var opts []luapat.Option
	switch v := L.Get(n).(type) {
	case *lua.LFunction:
		opts = append(opts, luapat.WithCallback(func(steps uint64) bool {
			L.Push(v)
			L.Push(lua.LNumber(steps))
			L.Call(1, 1)
			stop := lua.LVAsBool(L.Get(-1))
			L.Pop(1)
			return stop
		}))
	case lua.LNumber:
		// A zero budget still aborts at the first check.
		opts = append(opts, luapat.WithTimeout(max(conv.NanosToDuration(float64(v)), time.Nanosecond)))
	default:
		return nil
	}
	if L.Get(n+1) != lua.LNil {
		steps := optInt(L, n+1, 0)
		if steps < 1 {
			L.ArgError(n+1, "step count must be positive")
		}
		opts = append(opts, luapat.WithStepThreshold(uint64(steps)))
	}
	return opts
}

func optInt(L *lua.LState, n, d int) int {
	if L.Get(n) == lua.LNil {
		return d
	}
	return conv.FloatToInt(float64(L.CheckNumber(n)))
}

func captureValue(c luapat.Capture) lua.LValue {
	if c.Position {
		return lua.LNumber(c.Pos())
	}
	return lua.LString(c.Text)
}

func pushCaptures(L *lua.LState, caps []luapat.Capture) int {
	for _, c := range caps {
		L.Push(captureValue(c))
	}
	return len(caps)
}

// raise reports an engine error as a Lua error carrying the engine message.
func raise(L *lua.LState, err error) {
	L.RaiseError("%s", err.Error())
}
