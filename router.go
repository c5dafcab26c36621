package pact

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Func is a call routed through a contract.
type Func func(args ...interface{}) ([]interface{}, error)

// Guard returns fn wrapped with the given conditions. The conditions are
// evaluated in order before each call; fn runs only if all of them hold.
func Guard(method string, conditions []Condition, fn Func, opts ...Option) Func {
	p := New(nil, nil, opts...)
	p.seed(method, conditions)
	return p.Wrap(method, fn)
}

// Wrap returns fn guarded by the preconditions documented for method.
func (p *Pact) Wrap(method string, fn Func) Func {
	return func(args ...interface{}) ([]interface{}, error) {
		if err := p.Check(method, args); err != nil {
			return nil, err
		}
		return fn(args...)
	}
}

// Check evaluates the preconditions of method against args, extracting
// them first if needed. The first condition that does not hold is
// reported as a *ContractViolationError. An *IndexOutOfRangeError or
// *UnrecognizedCheckError is returned as is.
func (p *Pact) Check(method string, args []interface{}) error {
	conditions := p.load(method)
	if len(conditions) == 0 {
		return nil
	}

	for _, cond := range conditions {
		ok, reason, err := p.evaluate(cond, conditions, args)
		if err != nil {
			if p.ignoreUnrecognized && errors.Is(err, ErrUnrecognizedCheck) {
				p.logger.Debug("skip unrecognized check",
					zap.String("method", method),
					zap.Stringer("condition", cond))
				continue
			}
			return err
		}
		if !ok {
			p.logger.Debug("precondition violated",
				zap.String("method", method),
				zap.Int("param", cond.Param),
				zap.String("check", cond.Type),
				zap.Error(reason))
			return &ContractViolationError{
				Method:    method,
				Condition: cond,
				Reason:    reason,
			}
		}
	}
	return nil
}

func (p *Pact) evaluate(cond Condition, conditions []Condition, args []interface{}) (ok bool, reason error, err error) {
	switch cond.Check {
	case BasicCheck:
		ok, err = CheckBasic(cond, args)
		return ok, nil, err
	case ClassCheck:
		ok, err = p.types.checkClass(cond, args)
		return ok, nil, err
	case CustomCheck:
		v, err := argumentAt(cond, args)
		if err != nil {
			return false, nil, err
		}
		check, found := p.checks.Lookup(cond.Type)
		if !found || check.Validate == nil {
			return false, nil, &UnrecognizedCheckError{Condition: cond}
		}
		reason = check.Validate(v, paramName(cond, conditions))
		return reason == nil, reason, nil
	}
	return false, nil, &UnrecognizedCheckError{Condition: cond}
}

// paramName resolves the documented name of the parameter a custom
// condition refers to.
func paramName(cond Condition, conditions []Condition) string {
	for _, c := range conditions {
		if c.Check != CustomCheck && c.Param == cond.Param && len(c.Name) > 0 {
			return c.Name
		}
	}
	return cond.argName()
}

// Call invokes the method of the bound receiver after its preconditions
// hold. When the last result of the method is a non-nil error it is
// returned as the error of the call, alongside all results.
func (p *Pact) Call(method string, args ...interface{}) ([]interface{}, error) {
	if p.receiver == nil {
		return nil, &LookupError{Method: method}
	}
	m := reflect.ValueOf(p.receiver).MethodByName(method)
	if !m.IsValid() {
		return nil, &LookupError{Method: method}
	}

	if err := p.Check(method, args); err != nil {
		return nil, err
	}

	in, err := callArguments(method, m.Type(), args)
	if err != nil {
		return nil, err
	}

	out := m.Call(in)

	results := make([]interface{}, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	if n := len(out); n > 0 && m.Type().Out(n-1) == errorType {
		if err, _ := results[n-1].(error); err != nil {
			return results, err
		}
	}
	return results, nil
}

func callArguments(method string, t reflect.Type, args []interface{}) ([]reflect.Value, error) {
	var (
		numIn    = t.NumIn()
		variadic = t.IsVariadic()
	)

	if variadic && len(args) < numIn-1 {
		return nil, &ArityError{Method: method, Want: numIn - 1, Got: len(args), Variadic: true}
	}
	if !variadic && len(args) != numIn {
		return nil, &ArityError{Method: method, Want: numIn, Got: len(args)}
	}

	in := make([]reflect.Value, len(args))
	for i, v := range args {
		var paramType reflect.Type
		if variadic && i >= numIn-1 {
			paramType = t.In(numIn - 1).Elem()
		} else {
			paramType = t.In(i)
		}

		if v == nil {
			switch paramType.Kind() {
			case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
				in[i] = reflect.Zero(paramType)
				continue
			}
			return nil, fmt.Errorf("pact: %s argument %d: cannot use nil as %s", method, i+1, paramType)
		}

		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(paramType) {
			return nil, fmt.Errorf("pact: %s argument %d: cannot use %T as %s", method, i+1, v, paramType)
		}
		in[i] = rv
	}
	return in, nil
}
