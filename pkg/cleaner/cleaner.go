// Package cleaner defines the content transformation interface used to
// compose page processing: region extraction, Markdown conversion and any
// later rewriting are each a Cleaner, and Chain runs them in order.
package cleaner

// Cleaner transforms content into a cleaner format.
type Cleaner interface {
	// Clean transforms the input. The output format depends on the
	// implementation (HTML region, Markdown, plain text).
	Clean(content string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}

// Func adapts a plain function to the Cleaner interface.
type Func struct {
	name string
	fn   func(string) (string, error)
}

// NewFunc creates a named Cleaner from fn.
func NewFunc(name string, fn func(string) (string, error)) *Func {
	return &Func{name: name, fn: fn}
}

// Clean calls the wrapped function.
func (f *Func) Clean(content string) (string, error) {
	return f.fn(content)
}

// Name returns the name given to NewFunc.
func (f *Func) Name() string {
	return f.name
}
