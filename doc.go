// Package pact enforces preconditions written in method documentation.
//
// Two annotations are read from the doc comment of a method:
//
//	// Transfer moves amount from one account to another.
//	//
//	// @param Account from
//	// @param Account to
//	// @param int amount
//	// @pre positive 3
//	func (b *Bank) Transfer(from, to *Account, amount int) error
//
// An @param line declares the type of the next positional parameter.
// Primitive type names (int, float, bool, string, mixed, array, long,
// ...) are checked against the dynamic value of the argument; any other
// name must be registered with WithTypes or RegisterType. An @pre line
// names a custom check and the 1-based index of the argument it applies
// to; checks are resolved against a Checks registry, which LoadChecks can
// extend with CEL expressions and JSON Schema documents.
//
// Documentation is supplied by a DocSource. Go keeps no doc comments at
// run time, so tables are generated with gen-pact-doctable or read from
// source with ParseFile and ParseDir.
//
// Calls routed through Pact.Call, Pact.Wrap or Guard run only when every
// precondition holds; otherwise a *ContractViolationError is returned.
package pact
