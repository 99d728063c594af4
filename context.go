// context.go
//
// Per-invocation host context. A Context owns the operand stack the
// operations pop from and push to, records the most recent failure, and
// carries the one tunable this binding exposes: the decompressed-output
// ceiling. Calls are independent and stateless beyond this record; nothing
// here is safe for concurrent use by multiple goroutines.
package qdcompress

// Context is the state one host invocation runs against.
type Context struct {
	// Stack is the operand stack operations consume and produce on.
	Stack *Stack

	// MaxOutput caps the decompressed size in bytes for gunzip/inflate.
	// 0 means unlimited, which reproduces the original binding's behavior
	// and leaves the caller exposed to decompression bombs; hosts handling
	// untrusted input should set a ceiling.
	MaxOutput int

	lastErr *OpError
}

// NewContext returns a context with a fresh empty stack and no output cap.
func NewContext() *Context {
	return &Context{Stack: NewStack()}
}

// LastError returns the most recent failure recorded on this context, or nil
// if no call has failed yet. Successful calls do not clear it.
func (c *Context) LastError() *OpError { return c.lastErr }

// fail records e as the context's last error and returns it as the call's
// outcome. Every failure path of every operation funnels through here.
func (c *Context) fail(e *OpError) error {
	c.lastErr = e
	return e
}
