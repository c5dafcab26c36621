package pact

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Pact discovers the preconditions documented on the methods of a
// receiver and enforces them on calls routed through it.
//
// Conditions of a method are extracted on first use and kept for the
// lifetime of the Pact. A Pact is safe for concurrent use.
type Pact struct {
	receiver interface{}
	docs     DocSource
	checks   *Checks
	types    typeRegistry
	logger   *zap.Logger

	ignoreUnrecognized bool

	mu    sync.Mutex
	table map[string]*methodConditions
}

type methodConditions struct {
	method     string
	once       sync.Once
	conditions []Condition
}

// New binds a receiver to the documentation of its methods. receiver may
// be nil when calls are routed through Wrap only.
func New(receiver interface{}, docs DocSource, opts ...Option) *Pact {
	if docs == nil {
		docs = DocTable(nil)
	}

	p := &Pact{
		receiver: receiver,
		docs:     docs,
		checks:   DefaultChecks,
		logger:   zap.NewNop(),
		table:    make(map[string]*methodConditions),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HasPrecondition extracts the conditions of method, unless already
// done, and reports whether there is any.
func (p *Pact) HasPrecondition(method string) bool {
	return len(p.load(method)) > 0
}

// GetConditions returns the conditions of the given type previously
// extracted for method. A *LookupError is returned when method has not
// been queried through HasPrecondition or a call, and for every type
// other than Pre.
func (p *Pact) GetConditions(kind ConditionType, method string) ([]Condition, error) {
	if kind != Pre {
		return nil, &LookupError{Kind: kind, Method: method}
	}

	p.mu.Lock()
	entry, ok := p.table[method]
	p.mu.Unlock()
	if !ok {
		return nil, &LookupError{Kind: kind, Method: method}
	}

	conditions := entry.load(p)
	if conditions == nil {
		return []Condition{}, nil
	}
	return append([]Condition(nil), conditions...), nil
}

// BasicCheck is CheckBasic.
func (p *Pact) BasicCheck(cond Condition, args []interface{}) (bool, error) {
	return CheckBasic(cond, args)
}

// RegisterType makes a class name usable in @param annotations.
func (p *Pact) RegisterType(name string, t reflect.Type) {
	p.types.register(name, t)
}

func (p *Pact) load(method string) []Condition {
	p.mu.Lock()
	entry, ok := p.table[method]
	if !ok {
		entry = &methodConditions{method: method}
		p.table[method] = entry
	}
	p.mu.Unlock()

	return entry.load(p)
}

// seed installs conditions for method without reading documentation.
func (p *Pact) seed(method string, conditions []Condition) {
	entry := &methodConditions{method: method}
	entry.once.Do(func() {
		entry.conditions = append([]Condition(nil), conditions...)
	})

	p.mu.Lock()
	p.table[method] = entry
	p.mu.Unlock()
}

func (m *methodConditions) load(p *Pact) []Condition {
	m.once.Do(func() {
		m.conditions = ExtractPreconditions(p.docs.MethodDoc(m.method))

		p.logger.Debug("extracted preconditions",
			zap.String("method", m.method),
			zap.Int("conditions", len(m.conditions)))
	})
	return m.conditions
}
