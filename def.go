package pact

import (
	"fmt"
	"reflect"
	"sort"
)

const (
	Pre  ConditionType = "pre"
	Post ConditionType = "post"

	BasicCheck  CheckKind = "basic"
	ClassCheck  CheckKind = "class"
	CustomCheck CheckKind = "custom"
)

var (
	intKinds = []reflect.Kind{
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
	}

	// baseTypes maps every documented primitive type name to the reflect
	// kinds accepted for it. A nil entry accepts any value.
	baseTypes = map[string][]reflect.Kind{
		"int":    intKinds,
		"long":   intKinds,
		"float":  {reflect.Float32, reflect.Float64},
		"bool":   {reflect.Bool},
		"string": {reflect.String},
		"array":  {reflect.Slice, reflect.Array},
		"mixed":  nil,

		"uint":    {reflect.Uint},
		"uintptr": {reflect.Uintptr},
		"byte":    {reflect.Uint8},
		"rune":    {reflect.Int32},
		"any":     nil,
	}
)

type (
	// ConditionType is the category a condition belongs to.
	ConditionType string

	// CheckKind tells how a Condition is evaluated.
	CheckKind string

	// Condition describes one constraint on one argument of one method.
	Condition struct {
		Check CheckKind `yaml:"check"`
		// Type is the documented type name for basic and class checks and
		// the check name for custom checks.
		Type string `yaml:"type"`
		// Param is the 1-based position of the argument.
		Param int `yaml:"param"`
		// Name is the documented parameter name. Only @param lines carry one.
		Name string `yaml:"name,omitempty"`
	}
)

func (c Condition) String() string {
	if c.Check == CustomCheck {
		return fmt.Sprintf("%s %s #%d", c.Check, c.Type, c.Param)
	}
	if len(c.Name) > 0 {
		return fmt.Sprintf("%s %s %s #%d", c.Check, c.Type, c.Name, c.Param)
	}
	return fmt.Sprintf("%s %s #%d", c.Check, c.Type, c.Param)
}

// argName is the name handed to validators for the checked argument.
func (c Condition) argName() string {
	if len(c.Name) > 0 {
		return c.Name
	}
	return fmt.Sprintf("#%d", c.Param)
}

// IsBaseType reports whether name is one of the primitive type names that
// produce basic checks.
func IsBaseType(name string) bool {
	_, ok := baseTypes[name]
	return ok
}

// BaseTypes returns the recognized primitive type names.
func BaseTypes() []string {
	names := make([]string, 0, len(baseTypes))
	for name := range baseTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
