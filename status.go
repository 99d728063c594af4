// status.go
//
// Status codes and the typed error every operation reports failures with.
//
// The wire codes match the host's module.qd declaration: OK=1 and four
// failure classes. A failed call returns an *OpError carrying the code, an
// operation-prefixed human-readable message, and (when a codec produced it)
// the wrapped underlying error. There is no process-global error slot; the
// per-context record in Context exists only so hosts that surface a `.error`
// field keep working.
package qdcompress

import "errors"

// Status is the integer outcome code of one operation call.
type Status int

const (
	StatusOK         Status = 1 // pushed after the result buffer on success
	StatusAlloc      Status = 2 // host out of memory
	StatusInvalidArg Status = 3 // operand missing or of the wrong type
	StatusCompress   Status = 4 // encoder init or encode step failed
	StatusDecompress Status = 5 // malformed, truncated, or wrongly framed input
)

// String names the status for logs and REPL output.
func (st Status) String() string {
	switch st {
	case StatusOK:
		return "ok"
	case StatusAlloc:
		return "allocation failure"
	case StatusInvalidArg:
		return "invalid argument"
	case StatusCompress:
		return "compression failure"
	case StatusDecompress:
		return "decompression failure"
	default:
		return "unknown status"
	}
}

// OpError is the failure outcome of one operation call.
//
// Msg always begins with the operation name ("gzip: expected string
// argument"), matching what hosts historically read out of the error slot.
// Err is the underlying codec error, when one exists.
type OpError struct {
	Status Status
	Msg    string
	Err    error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *OpError) Unwrap() error { return e.Err }

func opErr(st Status, msg string) *OpError {
	return &OpError{Status: st, Msg: msg}
}

func opErrWrap(st Status, msg string, err error) *OpError {
	return &OpError{Status: st, Msg: msg, Err: err}
}

// StatusOf maps an operation result to its wire code: StatusOK for nil,
// the carried status for an *OpError, and 0 for any foreign error value.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Status
	}
	return 0
}
