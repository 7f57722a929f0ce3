package oink

// symbolInfo is what a scope remembers about a declared name: its type
// and whether it may be reassigned.
type symbolInfo struct {
	typ     DataType
	mutable bool
}

// scope is one lexical level of the analyzer's scope stack: a flat map
// from name to symbolInfo. The global scope is index 0; CodeBlock entry
// pushes a new scope, exit pops it.
type scope map[string]symbolInfo

// analyzerContext is the semantic analyzer's running state: a scope
// stack plus the name, if any, currently being initialized (so any
// reference to that name inside its own initializer can be caught as
// self-assignment).
type analyzerContext struct {
	scopes []scope

	// currentlyInitializing holds the declaration target name while its
	// initializer expression is being walked, and is empty otherwise.
	// Assignments never set it; they only reject the bare x @ x form.
	currentlyInitializing string
}

func newAnalyzerContext() *analyzerContext {
	return &analyzerContext{scopes: []scope{make(scope)}}
}

// push enters a new lexical scope (CodeBlock entry).
func (c *analyzerContext) push() {
	c.scopes = append(c.scopes, make(scope))
	semanticLog.Tracef("pushed scope, depth now %d", len(c.scopes))
}

// pop leaves the innermost lexical scope (CodeBlock exit).
func (c *analyzerContext) pop() {
	c.scopes = c.scopes[:len(c.scopes)-1]
	semanticLog.Tracef("popped scope, depth now %d", len(c.scopes))
}

func (c *analyzerContext) current() scope {
	return c.scopes[len(c.scopes)-1]
}

// declare records name in the innermost scope.
func (c *analyzerContext) declare(name string, typ DataType, mutable bool) {
	c.current()[name] = symbolInfo{typ: typ, mutable: mutable}
}

// isLive reports whether name is visible in any scope on the stack,
// searching innermost outward. Redeclaration and lookup checks both go
// through here.
func (c *analyzerContext) isLive(name string) (symbolInfo, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if info, ok := c.scopes[i][name]; ok {
			return info, true
		}
	}
	return symbolInfo{}, false
}

// declaredInCurrent reports whether name already exists in the innermost
// scope specifically — unused by redeclaration (which checks all live
// scopes via isLive) but kept for symmetry with declare/isLive and used
// by tests exercising shadowing directly.
func (c *analyzerContext) declaredInCurrent(name string) bool {
	_, ok := c.current()[name]
	return ok
}
