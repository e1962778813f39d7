package island

// DefaultKind discriminates the DefaultValue variant.
type DefaultKind uint8

// Default value variants.
const (
	DefaultInt DefaultKind = iota
	DefaultFloat
	DefaultString
	DefaultBool
)

// DefaultValue is the optional default for a registered field, a tagged
// union over the four literal types scripts can express.
type DefaultValue struct {
	Kind  DefaultKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// IntDefault wraps an integer default.
func IntDefault(v int64) *DefaultValue { return &DefaultValue{Kind: DefaultInt, Int: v} }

// FloatDefault wraps a float default.
func FloatDefault(v float64) *DefaultValue { return &DefaultValue{Kind: DefaultFloat, Float: v} }

// StringDefault wraps a string default.
func StringDefault(v string) *DefaultValue { return &DefaultValue{Kind: DefaultString, Str: v} }

// BoolDefault wraps a boolean default.
func BoolDefault(v bool) *DefaultValue { return &DefaultValue{Kind: DefaultBool, Bool: v} }

// FieldOptions is the constraint bag attached to a field registration.
// Every option is optional; the registry never validates option shapes
// against actual game data. Empty string means absent for the string-typed
// options.
type FieldOptions struct {
	Default *DefaultValue
	Min     *int64
	Max     *int64
	// Values enumerates allowed values for enum-like fields.
	Values []string
	// Keys and ValueType describe map-typed fields.
	Keys      string
	ValueType string
	// ItemType describes list-typed fields.
	ItemType string
	// Schema is a nested name->type map for structured fields.
	Schema map[string]string
}

// FieldRegistration is one script-declared metadata entry describing a
// named, typed property available on a tile kind or entity kind. FieldType
// is a free-form tag ("int", "enum", "map", "list", ...) interpreted by
// downstream tooling, not by this engine.
type FieldRegistration struct {
	FieldName string
	FieldType string
	Options   FieldOptions
}
