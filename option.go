package pact

import (
	"reflect"

	"go.uber.org/zap"
)

// Option configures a Pact.
type Option func(p *Pact)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pact) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithChecks sets the registry @pre annotations resolve against. The
// default is DefaultChecks.
func WithChecks(checks *Checks) Option {
	return func(p *Pact) {
		if checks != nil {
			p.checks = checks
		}
	}
}

// WithTypes registers class names for @param annotations whose type is
// not primitive. Each sample value contributes its dynamic type; use a
// typed nil pointer such as (*Account)(nil) to register a pointer type.
func WithTypes(samples map[string]interface{}) Option {
	return func(p *Pact) {
		for name, sample := range samples {
			if t := reflect.TypeOf(sample); t != nil {
				p.types.register(name, t)
			}
		}
	}
}

// WithIgnoreUnrecognized makes class and custom conditions without a
// registered type or check pass instead of failing the call.
func WithIgnoreUnrecognized() Option {
	return func(p *Pact) {
		p.ignoreUnrecognized = true
	}
}
