package pact

import (
	"fmt"
	"os"

	"github.com/Bofry/arg"
	"gopkg.in/yaml.v3"
)

type (
	// CheckFile is the YAML document read by LoadChecks.
	//
	//	checks:
	//	  - name: positive
	//	    help: argument must be greater than zero
	//	    expr: value > 0
	//	  - name: point
	//	    schema: '{"type":"object","required":["x","y"]}'
	CheckFile struct {
		Checks []CheckDefinition `yaml:"checks"`
	}

	CheckDefinition struct {
		Name   string `yaml:"name"`
		Help   string `yaml:"help"`
		Expr   string `yaml:"expr"`
		Schema string `yaml:"schema"`
	}
)

// LoadChecks reads a check definition file. The returned registry holds
// the built-in checks plus every definition of the file.
func LoadChecks(path string) (*Checks, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	checks, err := ParseChecks(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return checks, nil
}

// ParseChecks is LoadChecks over an in-memory document.
func ParseChecks(content []byte) (*Checks, error) {
	var file CheckFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, err
	}

	checks := NewChecks()
	for i, def := range file.Checks {
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}

		var (
			validate arg.ValueValidator
			err      error
		)
		if len(def.Expr) > 0 {
			validate, err = NewExprCheck(def.Expr)
		} else {
			validate, err = NewSchemaCheck(def.Name, def.Schema)
		}
		if err != nil {
			return nil, fmt.Errorf("checks[%d] %s: %w", i, def.Name, err)
		}
		checks.Register(def.Name, def.Help, validate)
	}
	return checks, nil
}

func (def *CheckDefinition) validate() error {
	if !checkNameRegexp.MatchString(def.Name) {
		return fmt.Errorf("invalid check name %q", def.Name)
	}
	if len(def.Expr) > 0 && len(def.Schema) > 0 {
		return fmt.Errorf("check %s declares both expr and schema", def.Name)
	}
	if len(def.Expr) == 0 && len(def.Schema) == 0 {
		return fmt.Errorf("check %s declares neither expr nor schema", def.Name)
	}
	return nil
}
