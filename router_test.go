package pact

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPact_Call(t *testing.T) {
	target := new(tester)
	p := New(target, testerDocs)

	results, err := p.Call("Add", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{5}, results)
	assert.Equal(t, 1, target.calls)
}

func TestPact_CallViolation(t *testing.T) {
	target := new(tester)
	p := New(target, testerDocs)

	results, err := p.Call("Add", 2, "3")
	require.ErrorIs(t, err, ErrContractViolation)
	assert.Nil(t, results)
	assert.Equal(t, 0, target.calls)

	var violation *ContractViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "Add", violation.Method)
	assert.Equal(t, Condition{Check: BasicCheck, Type: "int", Param: 2, Name: "b"}, violation.Condition)
}

func TestPact_CallCustomCheck(t *testing.T) {
	target := new(tester)
	p := New(target, testerDocs)

	results, err := p.Call("Divide", 6, 3)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{2, nil}, results)

	_, err = p.Call("Divide", 6, 0)
	require.ErrorIs(t, err, ErrContractViolation)

	var violation *ContractViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "positive", violation.Condition.Type)
	assert.Error(t, violation.Reason)

	_, err = p.Call("Divide", -6, 3)
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "nonNegative", violation.Condition.Type)

	assert.Equal(t, 1, target.calls)
}

func TestPact_CallCustomCheckNamesParameter(t *testing.T) {
	var names []string
	checks := NewChecks()
	checks.Register("nonEmpty", "", func(v interface{}, name string) error {
		names = append(names, name)
		return nil
	})
	p := New(new(tester), testerDocs, WithChecks(checks))

	_, err := p.Call("Greet", "gopher")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, names)
}

func TestPact_CallPassesMethodError(t *testing.T) {
	p := New(new(tester), testerDocs)

	results, err := p.Call("Fail", "boom")
	require.EqualError(t, err, "boom")
	require.Len(t, results, 2)
	assert.Equal(t, "boom", results[0])
}

func TestPact_CallIndexOutOfRange(t *testing.T) {
	target := new(tester)
	p := New(target, testerDocs)

	_, err := p.Call("Add", 2)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.NotErrorIs(t, err, ErrContractViolation)
	assert.Equal(t, 0, target.calls)
}

func TestPact_CallUnknownMethod(t *testing.T) {
	p := New(new(tester), testerDocs)

	_, err := p.Call("Multiply", 2, 3)
	assert.ErrorIs(t, err, ErrLookup)

	_, err = New(nil, testerDocs).Call("Add", 2, 3)
	assert.ErrorIs(t, err, ErrLookup)
}

func TestPact_CallArity(t *testing.T) {
	target := new(tester)
	p := New(target, testerDocs)

	_, err := p.Call("Undocumented", 1)
	require.ErrorIs(t, err, ErrArity)

	var arityErr *ArityError
	require.ErrorAs(t, err, &arityErr)
	assert.Equal(t, 0, arityErr.Want)
	assert.Equal(t, 1, arityErr.Got)

	_, err = p.Call("Add", 1, 2, 3)
	assert.ErrorIs(t, err, ErrArity)

	assert.Equal(t, 0, target.calls)
}

func TestPact_CallArgumentType(t *testing.T) {
	p := New(new(tester), testerDocs)

	_, err := p.Call("Undocumented")
	require.NoError(t, err)

	_, err = p.Call("Greet", nil)
	assert.Error(t, err)
}

func TestPact_CallVariadic(t *testing.T) {
	p := New(new(tester), testerDocs)

	results, err := p.Call("Sum", 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{6}, results)

	_, err = p.Call("Sum", -1, 2)
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = p.Call("Sum")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestPact_CallClassCheck(t *testing.T) {
	target := new(tester)
	p := New(target, testerDocs, WithTypes(map[string]interface{}{
		"Account": (*account)(nil),
	}))

	acc := &account{}
	_, err := p.Call("Deposit", acc, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, acc.Balance)

	_, err = p.Call("Deposit", "acc", 10)
	require.ErrorIs(t, err, ErrContractViolation)

	_, err = p.Call("Deposit", acc, -10)
	require.ErrorIs(t, err, ErrContractViolation)

	assert.Equal(t, 1, target.calls)
}

func TestPact_CallUnregisteredType(t *testing.T) {
	target := new(tester)

	_, err := New(target, testerDocs).Call("Deposit", &account{}, 10)
	require.ErrorIs(t, err, ErrUnrecognizedCheck)

	var unrecognized *UnrecognizedCheckError
	require.ErrorAs(t, err, &unrecognized)
	assert.Equal(t, "Account", unrecognized.Condition.Type)
	assert.Equal(t, 0, target.calls)

	_, err = New(target, testerDocs, WithIgnoreUnrecognized()).Call("Deposit", &account{}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, target.calls)
}

func TestPact_RegisterType(t *testing.T) {
	p := New(new(tester), testerDocs)
	p.RegisterType("Account", reflect.TypeOf(&account{}))

	_, err := p.Call("Deposit", &account{}, 1)
	assert.NoError(t, err)
}

func TestPact_UnrecognizedCustomCheck(t *testing.T) {
	p := New(new(tester), DocTable{
		"Greet": "// @pre shiny 1",
	})

	_, err := p.Call("Greet", "gopher")
	assert.ErrorIs(t, err, ErrUnrecognizedCheck)
}

func TestPact_Wrap(t *testing.T) {
	p := New(nil, DocTable{
		"concat": "// @param string a\n// @param string b",
	})

	var called bool
	concat := p.Wrap("concat", func(args ...interface{}) ([]interface{}, error) {
		called = true
		return []interface{}{args[0].(string) + args[1].(string)}, nil
	})

	results, err := concat("foo", "bar")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"foobar"}, results)
	assert.True(t, called)

	called = false
	_, err = concat("foo", 1)
	assert.ErrorIs(t, err, ErrContractViolation)
	assert.False(t, called)
}

func TestGuard(t *testing.T) {
	var calls int
	half := Guard("half",
		[]Condition{
			{Check: BasicCheck, Type: "int", Param: 1, Name: "n"},
			{Check: CustomCheck, Type: "nonNegative", Param: 1},
		},
		func(args ...interface{}) ([]interface{}, error) {
			calls++
			return []interface{}{args[0].(int) / 2}, nil
		})

	results, err := half(8)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{4}, results)

	_, err = half(-8)
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = half("8")
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = half()
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	assert.Equal(t, 1, calls)
}

func TestGuard_NoConditions(t *testing.T) {
	noop := Guard("noop", nil, func(args ...interface{}) ([]interface{}, error) {
		return nil, errors.New("called")
	})

	_, err := noop(1, 2, 3)
	assert.EqualError(t, err, "called")
}

func TestPact_LogsViolation(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := New(new(tester), testerDocs, WithLogger(zap.New(core)))

	_, err := p.Call("Add", "2", 3)
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("extracted preconditions").Len())

	violations := logs.FilterMessage("precondition violated").All()
	require.Len(t, violations, 1)
	fields := violations[0].ContextMap()
	assert.Equal(t, "Add", fields["method"])
	assert.Equal(t, int64(1), fields["param"])
	assert.Equal(t, "int", fields["check"])
}
