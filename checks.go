package pact

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/Bofry/arg"
)

var (
	// DefaultChecks holds the built-in named checks. Instances created
	// without WithChecks resolve @pre annotations against it.
	DefaultChecks = NewChecks()
)

// Check is a named custom precondition routine.
type Check struct {
	Name     string
	Help     string
	Validate arg.ValueValidator
}

// Checks is a registry of named custom checks. It is safe for concurrent
// use.
type Checks struct {
	mu     sync.RWMutex
	checks map[string]*Check
}

// NewChecks returns a registry that holds the built-in checks.
func NewChecks() *Checks {
	c := &Checks{
		checks: make(map[string]*Check),
	}
	c.Register("nonEmpty", "string, slice, array or map must not be empty", validateNonEmpty)
	c.Register("notNil", "argument must not be nil", validateNotNil)
	c.Register("nonNegative", "number must not be negative", validateNonNegative)
	c.Register("positive", "number must be greater than zero", validatePositive)
	return c
}

// Register adds or replaces the check called name.
func (c *Checks) Register(name, help string, validate arg.ValueValidator) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checks[name] = &Check{
		Name:     name,
		Help:     help,
		Validate: validate,
	}
}

// Lookup returns the check called name.
func (c *Checks) Lookup(name string) (*Check, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	check, ok := c.checks[name]
	return check, ok
}

// Names returns the registered check names in sorted order.
func (c *Checks) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateNonEmpty(v interface{}, name string) error {
	if s, ok := v.(string); ok {
		return arg.Strings.NonEmpty(s, name)
	}
	return arg.Values.Assert(v, name,
		func(v interface{}, name string) error {
			rv := reflect.ValueOf(v)
			switch rv.Kind() {
			case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
				if rv.Len() == 0 {
					return fmt.Errorf("argument %s is empty", name)
				}
				return nil
			}
			return fmt.Errorf("argument %s has no length (%T)", name, v)
		},
	)
}

func validateNotNil(v interface{}, name string) error {
	return arg.Values.Assert(v, name,
		func(v interface{}, name string) error {
			if v == nil {
				return fmt.Errorf("argument %s should not be nil", name)
			}
			rv := reflect.ValueOf(v)
			switch rv.Kind() {
			case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
				if rv.IsNil() {
					return fmt.Errorf("argument %s should not be nil", name)
				}
			}
			return nil
		},
	)
}

func validateNonNegative(v interface{}, name string) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return arg.Ints.NonNegativeInteger(rv.Int(), name)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return nil
	case reflect.Float32, reflect.Float64:
		return arg.Floats.Assert(rv.Float(), name,
			func(v float64, name string) error {
				if v < 0 {
					return fmt.Errorf("argument %s should be non-negative number", name)
				}
				return nil
			},
		)
	}
	return fmt.Errorf("argument %s is not a number (%T)", name, v)
}

func validatePositive(v interface{}, name string) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return arg.Ints.Assert(rv.Int(), name,
			func(v int64, name string) error {
				if v <= 0 {
					return fmt.Errorf("argument %s should be positive integer", name)
				}
				return nil
			},
		)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.Uint() == 0 {
			return fmt.Errorf("argument %s should be positive integer", name)
		}
		return nil
	case reflect.Float32, reflect.Float64:
		return arg.Floats.Assert(rv.Float(), name,
			func(v float64, name string) error {
				if v <= 0 {
					return fmt.Errorf("argument %s should be positive number", name)
				}
				return nil
			},
		)
	}
	return fmt.Errorf("argument %s is not a number (%T)", name, v)
}
