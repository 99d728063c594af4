// ops.go
//
// The five stack operations the binding exposes.
//
// Operations surfaced:
//  1. gzip       (data:str -- compressed:str)        level 6, gzip framing
//  2. gzip_level (data:str level:int -- compressed:str)  level clamped to [1,9]
//  3. gunzip     (compressed:str -- data:str)        expects gzip framing
//  4. deflate    (data:str -- compressed:str)        raw deflate, no container
//  5. inflate    (compressed:str -- data:str)        expects raw deflate
//
// Conventions:
//   - Each call pops its operands, runs the codec engine, and on success
//     pushes the result buffer followed by Int(StatusOK).
//   - On failure nothing is pushed; the call returns an *OpError (also
//     recorded on the context) whose status is the call's outcome.
//   - An operand popped before a type check fails stays popped; the original
//     binding consumed operands the same way.
package qdcompress

// OpFunc is the signature the host dispatches compression operations through.
type OpFunc func(*Context) error

// Ops returns the operation registry keyed by wire name, for hosts that bind
// natives by name.
func Ops() map[string]OpFunc {
	return map[string]OpFunc{
		"gzip":       Gzip,
		"gzip_level": GzipLevel,
		"gunzip":     Gunzip,
		"deflate":    Deflate,
		"inflate":    Inflate,
	}
}

func clampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// Gzip compresses the top-of-stack buffer with gzip framing at the default
// level.
func Gzip(ctx *Context) error {
	data, ok := ctx.Stack.Pop()
	if !ok || data.Tag != VTStr {
		return ctx.fail(opErr(StatusInvalidArg, "gzip: expected string argument"))
	}
	out, oerr := compressAll("gzip", data.Bytes(), DefaultLevel, frameGzip)
	if oerr != nil {
		return ctx.fail(oerr)
	}
	ctx.Stack.Push(Str(string(out)))
	ctx.Stack.Push(Int(int64(StatusOK)))
	return nil
}

// GzipLevel compresses with gzip framing at a caller-chosen level. The level
// is popped first (it sits on top), then the data buffer. Out-of-range levels
// are clamped into [1,9], never rejected.
func GzipLevel(ctx *Context) error {
	lv, ok := ctx.Stack.Pop()
	if !ok || lv.Tag != VTInt {
		return ctx.fail(opErr(StatusInvalidArg, "gzip_level: expected integer level"))
	}
	data, ok := ctx.Stack.Pop()
	if !ok || data.Tag != VTStr {
		return ctx.fail(opErr(StatusInvalidArg, "gzip_level: expected string data"))
	}
	level := clampLevel(int(lv.Data.(int64)))
	out, oerr := compressAll("gzip_level", data.Bytes(), level, frameGzip)
	if oerr != nil {
		return ctx.fail(oerr)
	}
	ctx.Stack.Push(Str(string(out)))
	ctx.Stack.Push(Int(int64(StatusOK)))
	return nil
}

// Gunzip decompresses a gzip-framed buffer, verifying header and CRC trailer.
func Gunzip(ctx *Context) error {
	data, ok := ctx.Stack.Pop()
	if !ok || data.Tag != VTStr {
		return ctx.fail(opErr(StatusInvalidArg, "gunzip: expected string argument"))
	}
	out, oerr := decompressAll("gunzip", data.Bytes(), frameGzip, ctx.MaxOutput)
	if oerr != nil {
		return ctx.fail(oerr)
	}
	ctx.Stack.Push(Str(string(out)))
	ctx.Stack.Push(Int(int64(StatusOK)))
	return nil
}

// Deflate compresses to a raw deflate stream (no header or trailer) at the
// default level.
func Deflate(ctx *Context) error {
	data, ok := ctx.Stack.Pop()
	if !ok || data.Tag != VTStr {
		return ctx.fail(opErr(StatusInvalidArg, "deflate: expected string argument"))
	}
	out, oerr := compressAll("deflate", data.Bytes(), DefaultLevel, frameRaw)
	if oerr != nil {
		return ctx.fail(oerr)
	}
	ctx.Stack.Push(Str(string(out)))
	ctx.Stack.Push(Int(int64(StatusOK)))
	return nil
}

// Inflate decompresses a raw deflate stream.
func Inflate(ctx *Context) error {
	data, ok := ctx.Stack.Pop()
	if !ok || data.Tag != VTStr {
		return ctx.fail(opErr(StatusInvalidArg, "inflate: expected string argument"))
	}
	out, oerr := decompressAll("inflate", data.Bytes(), frameRaw, ctx.MaxOutput)
	if oerr != nil {
		return ctx.fail(oerr)
	}
	ctx.Stack.Push(Str(string(out)))
	ctx.Stack.Push(Int(int64(StatusOK)))
	return nil
}
