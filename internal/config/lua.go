package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// evalFile runs an init file in a restricted interpreter and collects the
// declared configuration. Only the base, table, string, and math
// libraries are opened; the script has no process, filesystem, or network
// access.
func evalFile(path string) (Config, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(open.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(open.name)); err != nil {
			return Config{}, fmt.Errorf("open lua lib %s: %w", open.name, err)
		}
	}

	cfg := Default()
	var evalErr error

	scout := L.NewTable()

	L.SetField(scout, "set", L.NewFunction(func(L *lua.LState) int {
		option := L.CheckString(1)
		value := toGoValue(L.Get(2))
		if _, err := applyOption(&cfg.Options, option, value); err != nil && evalErr == nil {
			evalErr = err
		}
		return 0
	}))

	L.SetField(scout, "map", L.NewFunction(func(L *lua.LState) int {
		cfg.Bindings = append(cfg.Bindings, Binding{
			Kind:   L.CheckString(1),
			Chord:  L.CheckString(2),
			Action: L.CheckString(3),
		})
		return 0
	}))

	L.SetField(scout, "filters", L.NewFunction(func(L *lua.LState) int {
		cfg.FilterLine = L.CheckString(1)
		return 0
	}))

	L.SetGlobal("scout", scout)

	if err := L.DoFile(path); err != nil {
		return Config{}, err
	}
	if evalErr != nil {
		return Config{}, evalErr
	}
	return cfg, nil
}

// toGoValue converts a Lua value to its Go equivalent. Tables with
// sequential integer keys become slices, other tables become maps;
// functions and userdata convert to nil.
func toGoValue(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		return tableToGo(v)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable) any {
	length := t.Len()
	if length > 0 {
		out := make([]any, 0, length)
		for i := 1; i <= length; i++ {
			out = append(out, toGoValue(t.RawGetInt(i)))
		}
		return out
	}

	out := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			out[string(ks)] = toGoValue(v)
		}
	})
	return out
}
