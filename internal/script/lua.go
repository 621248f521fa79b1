package script

import (
	"bytes"
	"io/fs"

	lua "github.com/yuin/gopher-lua"

	"github.com/samdwyer/tiled/internal/errors"
)

// LuaEngine runs scripts with gopher-lua. Sources are read from an fs.FS so
// games can be served from disk or from the embedded demo.
type LuaEngine struct {
	state *lua.LState
	fsys  fs.FS
}

// NewLuaEngine creates a Lua state that reads script files from fsys.
func NewLuaEngine(fsys fs.FS) *LuaEngine {
	return &LuaEngine{
		state: lua.NewState(),
		fsys:  fsys,
	}
}

// LoadFile compiles and runs the script at path.
func (e *LuaEngine) LoadFile(path string) error {
	src, err := fs.ReadFile(e.fsys, path)
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeNotFound, "script %s", path)
	}
	chunk, err := e.state.Load(bytes.NewReader(src), path)
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeScript, "compiling %s", path)
	}
	e.state.Push(chunk)
	if err := e.state.PCall(0, lua.MultRet, nil); err != nil {
		return errors.WrapWithCodef(err, errors.CodeScript, "running %s", path)
	}
	return nil
}

// Call invokes the global function name with no arguments.
func (e *LuaEngine) Call(name string) error {
	fn, ok := e.state.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return errors.UndefinedCallablef("%s function was not declared", name)
	}
	err := e.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	})
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeScript, "calling %s", name)
	}
	return nil
}

// Register exposes fn as a global function.
func (e *LuaEngine) Register(name string, fn HostFunc) error {
	if name == "" || fn == nil {
		return errors.InvalidArgumentf("register: empty command")
	}
	e.state.SetGlobal(name, e.state.NewFunction(func(L *lua.LState) int {
		results := fn(luaArgs{state: L})
		for _, v := range results {
			L.Push(toLValue(L, v))
		}
		return len(results)
	}))
	return nil
}

// Close closes the Lua state.
func (e *LuaEngine) Close() {
	e.state.Close()
}

type luaArgs struct {
	state *lua.LState
}

func (a luaArgs) Int(n int) int       { return a.state.CheckInt(n) }
func (a luaArgs) String(n int) string { return a.state.CheckString(n) }
func (a luaArgs) Text(n int) string   { return a.state.ToStringMeta(a.state.Get(n)).String() }
func (a luaArgs) Len() int            { return a.state.GetTop() }

func toLValue(L *lua.LState, v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	default:
		L.RaiseError("unsupported host return type %T", v)
		return lua.LNil
	}
}

var _ Engine = (*LuaEngine)(nil)
