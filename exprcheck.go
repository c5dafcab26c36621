package pact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Bofry/arg"
	"github.com/google/cel-go/cel"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	SCHEMA_RESOURCE_URL_PREFIX = "https://pact.bofry.local/checks/"
)

var (
	celEnvOnce sync.Once
	celEnv     *cel.Env
	celEnvErr  error
)

func exprEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("value", cel.DynType),
			cel.Variable("name", cel.StringType),
			cel.CrossTypeNumericComparisons(true),
		)
	})
	return celEnv, celEnvErr
}

// NewExprCheck compiles a CEL expression into a check. The expression
// sees the argument as `value` and its documented name as `name`, and
// must evaluate to a bool.
func NewExprCheck(expr string) (arg.ValueValidator, error) {
	env, err := exprEnv()
	if err != nil {
		return nil, fmt.Errorf("cel environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast,
		cel.InterruptCheckFrequency(100),
	)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}

	return func(v interface{}, name string) error {
		out, _, err := prg.Eval(map[string]interface{}{
			"value": v,
			"name":  name,
		})
		if err != nil {
			return fmt.Errorf("argument %s: eval %q: %w", name, expr, err)
		}
		ok, isBool := out.Value().(bool)
		if !isBool {
			return fmt.Errorf("argument %s: %q does not evaluate to bool", name, expr)
		}
		if !ok {
			return fmt.Errorf("argument %s does not satisfy %q", name, expr)
		}
		return nil
	}, nil
}

// NewSchemaCheck compiles a JSON Schema document into a check. The
// argument is converted to its JSON form before validation.
func NewSchemaCheck(name, schema string) (arg.ValueValidator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	url := SCHEMA_RESOURCE_URL_PREFIX + name + ".schema.json"
	if err := c.AddResource(url, strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("schema %s load failed: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema %s compile failed: %w", name, err)
	}

	return func(v interface{}, name string) error {
		doc, err := toJSONValue(v)
		if err != nil {
			return fmt.Errorf("argument %s: %w", name, err)
		}
		if err := compiled.Validate(doc); err != nil {
			return fmt.Errorf("argument %s: %w", name, err)
		}
		return nil
	}, nil
}

func toJSONValue(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
