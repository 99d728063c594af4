package qdcompress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackLIFO(t *testing.T) {
	s := NewStack()
	s.Push(Str("first"))
	s.Push(Int(2))
	s.Push(Str("third"))

	require.Equal(t, 3, s.Len())
	require.Equal(t, VTStr, s.Top().Tag)

	v, ok := s.Pop()
	require.True(t, ok)
	require.Equal(t, "third", v.Data.(string))

	v, ok = s.Pop()
	require.True(t, ok)
	require.Equal(t, int64(2), v.Data.(int64))

	v, ok = s.Pop()
	require.True(t, ok)
	require.Equal(t, "first", v.Data.(string))

	require.Equal(t, 0, s.Len())
}

func TestStackPopEmpty(t *testing.T) {
	s := NewStack()
	v, ok := s.Pop()
	require.False(t, ok)
	require.Equal(t, VTNull, v.Tag)
	require.Equal(t, VTNull, s.Top().Tag)
}

// Pushing well past the initial backing array exercises the doubling growth.
func TestStackGrowth(t *testing.T) {
	s := NewStack()
	const n = 1000
	for i := 0; i < n; i++ {
		s.Push(Int(int64(i)))
	}
	require.Equal(t, n, s.Len())
	for i := n - 1; i >= 0; i-- {
		v, ok := s.Pop()
		require.True(t, ok)
		require.Equal(t, int64(i), v.Data.(int64))
	}
}

func TestValueString(t *testing.T) {
	require.Equal(t, "null", Null.String())
	require.Equal(t, "true", Bool(true).String())
	require.Equal(t, "42", Int(42).String())
	require.Equal(t, "1.5", Num(1.5).String())
	require.Equal(t, "<str len=5>", Str("hello").String())
}

func TestValueBytes(t *testing.T) {
	require.Equal(t, []byte{0, 1, 2}, Str("\x00\x01\x02").Bytes())
	require.Nil(t, Int(7).Bytes())
}
