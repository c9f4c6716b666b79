package buffer

import (
	"testing"

	"github.com/danmuck/midi2/internal/testutil/testlog"
	"github.com/danmuck/midi2/protocol"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	testlog.Start(t)
	require.Equal(t, Word, KindOf[uint32]())
	require.Equal(t, Byte, KindOf[uint8]())
	require.Equal(t, "ump", Word.String())
	require.Equal(t, "bytes", Byte.String())
}

func TestFixedResizeWithinCapacity(t *testing.T) {
	testlog.Start(t)
	f := NewFixed[uint32](4)
	require.Equal(t, 4, f.Cap())
	require.Empty(t, f.Units())

	require.NoError(t, f.Resize(4))
	require.Len(t, f.Units(), 4)
	require.ErrorIs(t, f.Resize(5), protocol.ErrBufferOverflow)
	require.Len(t, f.Units(), 4, "failed resize must keep the length")
}

func TestFixedGrowthZeroFills(t *testing.T) {
	testlog.Start(t)
	f := NewFixed[uint8](3)
	require.NoError(t, Copy(f, []uint8{1, 2, 3}))
	require.NoError(t, f.Resize(1))
	require.NoError(t, f.Resize(3))
	require.Equal(t, []uint8{1, 0, 0}, f.Units())
}

func TestOverAdoptsCallerStorage(t *testing.T) {
	testlog.Start(t)
	var storage [2]uint32
	f := Over(storage[:])
	require.NoError(t, Copy(f, []uint32{0xAAAA_AAAA, 0xBBBB_BBBB}))
	require.Equal(t, uint32(0xBBBB_BBBB), storage[1])
	require.ErrorIs(t, Copy(f, []uint32{1, 2, 3}), protocol.ErrBufferOverflow)
}

func TestGrowableAlwaysGrows(t *testing.T) {
	testlog.Start(t)
	g := NewGrowable[uint32]()
	for n := 1; n <= 64; n++ {
		require.NoError(t, g.Resize(n))
		g.Units()[n-1] = uint32(n)
	}
	require.Len(t, g.Units(), 64)
	require.Equal(t, uint32(64), g.Units()[63])

	require.NoError(t, g.Resize(2))
	require.NoError(t, g.Resize(3))
	require.Equal(t, []uint32{1, 2, 0}, g.Units())
}

func TestSliceIsZeroCopy(t *testing.T) {
	testlog.Start(t)
	data := []uint8{0x90, 0x40, 0x7F}
	s := Slice[uint8](data)
	require.Same(t, &data[0], &s.Units()[0])
}

func TestViewKeepsKindForEmptySlices(t *testing.T) {
	testlog.Start(t)
	var words []uint32
	u := View(words)
	require.Equal(t, Word, u.Kind())
	require.Equal(t, 0, u.Len())
	require.Equal(t, Byte, View([]uint8(nil)).Kind())
}

func TestViewHeadAndUnwrap(t *testing.T) {
	testlog.Start(t)
	u := View([]uint32{1, 2, 3})
	h := u.Head(2)
	require.Equal(t, 2, h.Len())
	require.Equal(t, []uint32{1, 2}, Unwrap[uint32](h))
}
