// Package hooks builds language init hooks backed by Lua scripts.
//
// A script runs in a fresh, sandboxed state every time the hook fires. It
// can read a global `language` table ({name = ..., extensions = {...}}) and
// call log(msg) to write through the host's logger. Raising a Lua error
// fails the hook.
package hooks

import (
	"context"
	"fmt"

	"github.com/getlawrence/langreg/internal/languages"
	"github.com/getlawrence/langreg/internal/logger"
	lua "github.com/yuin/gopher-lua"
)

// Factory returns a languages.HookFactory that wires every init script to
// Lua with output going to l.
func Factory(l logger.Logger) languages.HookFactory {
	return func(s languages.Support, script string) languages.InitFunc {
		return Lua(s, script, l)
	}
}

// Lua returns an InitFunc running script for language s.
func Lua(s languages.Support, script string, l logger.Logger) languages.InitFunc {
	if l == nil {
		l = logger.NopLogger{}
	}
	rec := s.Clone()
	return func(ctx context.Context) error {
		L := newState(ctx)
		defer L.Close()

		L.SetGlobal("language", languageTable(L, rec))
		L.SetGlobal("log", L.NewFunction(func(L *lua.LState) int {
			l.Log(L.CheckString(1))
			return 0
		}))

		if err := L.DoFile(script); err != nil {
			return fmt.Errorf("init script %s for %s: %w", script, rec.Name, err)
		}
		return nil
	}
}

// newState opens only base, table, string and math. File loading helpers
// from the base library are removed so a script cannot pull in other files.
func newState(ctx context.Context) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	if ctx != nil {
		L.SetContext(ctx)
	}
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func languageTable(L *lua.LState, s languages.Support) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "name", lua.LString(s.Name))
	exts := L.NewTable()
	for _, ext := range s.Extensions {
		exts.Append(lua.LString(ext))
	}
	L.SetField(tbl, "extensions", exts)
	L.SetField(tbl, "generic_lexer", lua.LBool(s.UseGenericLexer))
	return tbl
}
