package main

import (
	"github.com/Bofry/pact"
)

const (
	OUTPUT_TEXT string = "text"
	OUTPUT_YAML string = "yaml"
)

type (
	Report struct {
		Types []*TypeReport `yaml:"types"`
	}

	TypeReport struct {
		Name    string          `yaml:"name"`
		Methods []*MethodReport `yaml:"methods"`
	}

	MethodReport struct {
		Name       string             `yaml:"name"`
		Conditions []*ConditionReport `yaml:"conditions"`
	}

	ConditionReport struct {
		pact.Condition `yaml:",inline"`
		// Resolved is set on custom conditions only.
		Resolved *bool `yaml:"resolved,omitempty"`
	}
)

// Unresolved counts the custom conditions without a registered check.
func (r *Report) Unresolved() int {
	var n int
	for _, t := range r.Types {
		for _, m := range t.Methods {
			for _, c := range m.Conditions {
				if c.Resolved != nil && !*c.Resolved {
					n++
				}
			}
		}
	}
	return n
}
