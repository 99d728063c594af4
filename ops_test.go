package qdcompress

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpsRegistry(t *testing.T) {
	ops := Ops()
	for _, name := range []string{"gzip", "gzip_level", "gunzip", "deflate", "inflate"} {
		require.Contains(t, ops, name)
		require.NotNil(t, ops[name])
	}
	require.Len(t, ops, 5)
}

func TestGzipStackEffect(t *testing.T) {
	ctx := NewContext()
	ctx.Stack.Push(Str("Hello, World!"))

	require.NoError(t, Gzip(ctx))
	require.Equal(t, 2, ctx.Stack.Len())

	status, ok := ctx.Stack.Pop()
	require.True(t, ok)
	require.Equal(t, VTInt, status.Tag)
	require.Equal(t, int64(StatusOK), status.Data.(int64))

	result, ok := ctx.Stack.Pop()
	require.True(t, ok)
	require.Equal(t, VTStr, result.Tag)
	z := result.Bytes()
	require.Equal(t, byte(0x1F), z[0])
	require.Equal(t, byte(0x8B), z[1])

	// And back again through the stack.
	ctx.Stack.Push(result)
	require.NoError(t, Gunzip(ctx))
	ctx.Stack.Pop() // status
	back, _ := ctx.Stack.Pop()
	require.Equal(t, "Hello, World!", back.Data.(string))
}

func TestGzipTypeError(t *testing.T) {
	ctx := NewContext()
	ctx.Stack.Push(Int(42))

	err := Gzip(ctx)
	require.Error(t, err)
	require.Equal(t, StatusInvalidArg, StatusOf(err))
	require.Equal(t, 0, ctx.Stack.Len(), "nothing pushed on failure; operand stays consumed")
	require.Equal(t, "gzip: expected string argument", ctx.LastError().Msg)
}

func TestPopOnEmptyStack(t *testing.T) {
	for name, fn := range Ops() {
		t.Run(name, func(t *testing.T) {
			ctx := NewContext()
			err := fn(ctx)
			require.Error(t, err)
			require.Equal(t, StatusInvalidArg, StatusOf(err))
			require.Equal(t, 0, ctx.Stack.Len())
		})
	}
}

func gzipAtLevel(t *testing.T, data string, level int64) string {
	t.Helper()
	ctx := NewContext()
	ctx.Stack.Push(Str(data))
	ctx.Stack.Push(Int(level))
	require.NoError(t, GzipLevel(ctx))
	ctx.Stack.Pop() // status
	out, ok := ctx.Stack.Pop()
	require.True(t, ok)
	return out.Data.(string)
}

func TestGzipLevelClamp(t *testing.T) {
	data := strings.Repeat("clamp me ", 5000)

	require.Equal(t, gzipAtLevel(t, data, 1), gzipAtLevel(t, data, 0))
	require.Equal(t, gzipAtLevel(t, data, 1), gzipAtLevel(t, data, -7))
	require.Equal(t, gzipAtLevel(t, data, 9), gzipAtLevel(t, data, 100))
}

func TestGzipLevelOperandOrder(t *testing.T) {
	// Level sits on top of the stack and is popped first; a non-integer top
	// fails before the data operand is touched.
	ctx := NewContext()
	ctx.Stack.Push(Str("data"))
	ctx.Stack.Push(Str("not a level"))

	err := GzipLevel(ctx)
	require.Error(t, err)
	require.Equal(t, StatusInvalidArg, StatusOf(err))
	require.Equal(t, "gzip_level: expected integer level", ctx.LastError().Msg)
	require.Equal(t, 1, ctx.Stack.Len(), "data operand remains on the stack")
}

func TestGzipLevelMissingData(t *testing.T) {
	ctx := NewContext()
	ctx.Stack.Push(Int(5))

	err := GzipLevel(ctx)
	require.Error(t, err)
	require.Equal(t, StatusInvalidArg, StatusOf(err))
	require.Equal(t, "gzip_level: expected string data", ctx.LastError().Msg)
}

func TestDeflateInflateOps(t *testing.T) {
	for _, payload := range []string{"", "Hello, World!", strings.Repeat("q", 1<<16)} {
		ctx := NewContext()
		ctx.Stack.Push(Str(payload))
		require.NoError(t, Deflate(ctx))
		ctx.Stack.Pop() // status

		// Feed the raw stream straight back.
		require.NoError(t, Inflate(ctx))
		ctx.Stack.Pop() // status
		back, _ := ctx.Stack.Pop()
		require.Equal(t, payload, back.Data.(string))
	}
}

func TestGunzipOnRawDeflateFails(t *testing.T) {
	ctx := NewContext()
	ctx.Stack.Push(Str("Hello, World!"))
	require.NoError(t, Deflate(ctx))
	ctx.Stack.Pop() // status

	err := Gunzip(ctx)
	require.Error(t, err)
	require.Equal(t, StatusDecompress, StatusOf(err))
}

func TestInflateRespectsContextCeiling(t *testing.T) {
	ctx := NewContext()
	ctx.MaxOutput = 512
	ctx.Stack.Push(Str(strings.Repeat("a", 1<<20)))
	require.NoError(t, Deflate(ctx))
	ctx.Stack.Pop() // status

	err := Inflate(ctx)
	require.Error(t, err)
	require.Equal(t, StatusDecompress, StatusOf(err))
	require.Contains(t, ctx.LastError().Msg, "output exceeds limit")
}

func TestLastErrorSurvivesSuccess(t *testing.T) {
	ctx := NewContext()

	ctx.Stack.Push(Int(1))
	require.Error(t, Gzip(ctx))
	recorded := ctx.LastError()
	require.NotNil(t, recorded)

	ctx.Stack.Push(Str("fine"))
	require.NoError(t, Gzip(ctx))
	require.Same(t, recorded, ctx.LastError(), "success overwrites nothing")
}

func TestStatusOf(t *testing.T) {
	require.Equal(t, StatusOK, StatusOf(nil))
	require.Equal(t, StatusCompress, StatusOf(opErr(StatusCompress, "x")))
	require.Equal(t, Status(0), StatusOf(errors.New("foreign error")))
}
