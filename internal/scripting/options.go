package scripting

import (
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/isleforge/internal/island"
)

// Field option bags are interpreted permissively: each option is converted
// best-effort and unrecognized or mistyped shapes are silently dropped. The
// registry is declarative metadata for downstream tooling; it never
// validates declarations against game data.

func parseFieldOptions(opts *lua.LTable) island.FieldOptions {
	var out island.FieldOptions

	out.Default = defaultValue(opts.RawGetString("default"))
	out.Min = intOption(opts.RawGetString("min"))
	out.Max = intOption(opts.RawGetString("max"))

	// "values" is overloaded: a sequence enumerates allowed values, a string
	// names the value type of a map field.
	switch v := opts.RawGetString("values").(type) {
	case *lua.LTable:
		out.Values = stringSeq(v)
	case lua.LString:
		out.ValueType = string(v)
	}

	out.Keys = stringOption(opts.RawGetString("keys"))
	out.ItemType = stringOption(opts.RawGetString("item_type"))

	if tbl, ok := opts.RawGetString("schema").(*lua.LTable); ok {
		out.Schema = stringMap(tbl)
	}

	return out
}

// defaultValue classifies a Lua literal into the default tagged union.
// Integral numbers become int defaults, everything else with a fraction
// becomes a float.
func defaultValue(v lua.LValue) *island.DefaultValue {
	switch v := v.(type) {
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
			return island.IntDefault(int64(f))
		}
		return island.FloatDefault(f)
	case lua.LString:
		return island.StringDefault(string(v))
	case lua.LBool:
		return island.BoolDefault(bool(v))
	default:
		return nil
	}
}

func intOption(v lua.LValue) *int64 {
	n, ok := v.(lua.LNumber)
	if !ok {
		return nil
	}
	i := int64(n)
	return &i
}

func stringOption(v lua.LValue) string {
	s, ok := v.(lua.LString)
	if !ok {
		return ""
	}
	return string(s)
}

// stringSeq collects the string elements of a sequence, dropping the rest.
func stringSeq(tbl *lua.LTable) []string {
	var out []string
	for i := 1; ; i++ {
		v := tbl.RawGetInt(i)
		if v == lua.LNil {
			break
		}
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// stringMap collects the string-keyed, string-valued pairs of a table,
// dropping the rest.
func stringMap(tbl *lua.LTable) map[string]string {
	out := make(map[string]string)
	tbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		vs, ok := v.(lua.LString)
		if !ok {
			return
		}
		out[string(ks)] = string(vs)
	})
	return out
}
