package pact

import (
	"reflect"
	"sync"
)

// CheckBasic evaluates a basic condition against the arguments of a call.
// It reports whether the argument at cond.Param has the documented
// primitive type. An *IndexOutOfRangeError is returned when cond.Param is
// not a position within args.
func CheckBasic(cond Condition, args []interface{}) (bool, error) {
	v, err := argumentAt(cond, args)
	if err != nil {
		return false, err
	}

	kinds, ok := baseTypes[cond.Type]
	if !ok {
		return false, &UnrecognizedCheckError{Condition: cond}
	}
	if kinds == nil {
		return true, nil
	}
	if v == nil {
		return false, nil
	}

	kind := reflect.TypeOf(v).Kind()
	for _, k := range kinds {
		if k == kind {
			return true, nil
		}
	}
	return false, nil
}

func argumentAt(cond Condition, args []interface{}) (interface{}, error) {
	if cond.Param < 1 || cond.Param > len(args) {
		return nil, &IndexOutOfRangeError{
			Condition: cond,
			Count:     len(args),
		}
	}
	return args[cond.Param-1], nil
}

// typeRegistry resolves documented class names to Go types.
type typeRegistry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

func (r *typeRegistry) register(name string, t reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.types == nil {
		r.types = make(map[string]reflect.Type)
	}
	r.types[name] = t
}

func (r *typeRegistry) lookup(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]
	return t, ok
}

// checkClass reports whether the argument at cond.Param is assignable to
// the type registered for cond.Type. Interface types accept nil.
func (r *typeRegistry) checkClass(cond Condition, args []interface{}) (bool, error) {
	v, err := argumentAt(cond, args)
	if err != nil {
		return false, err
	}

	t, ok := r.lookup(cond.Type)
	if !ok {
		return false, &UnrecognizedCheckError{Condition: cond}
	}
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return true, nil
		}
		return false, nil
	}
	return reflect.TypeOf(v).AssignableTo(t), nil
}
