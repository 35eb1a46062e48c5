package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spinhalf/mat"
)

func TestKey(t *testing.T) {
	t.Parallel()
	require.Equal(t, "u_8", Key("u", 8))
	require.Equal(t, "xxz_4_0.5_0", Key("xxz", 4, 0.5, 0.0))
}

func TestGetPut(t *testing.T) {
	t.Parallel()
	c, err := New(t.TempDir())
	require.NoError(t, err)

	_, ok, err := c.Get("u_3")
	require.NoError(t, err)
	require.False(t, ok)

	m := mat.M([][]complex64{
		{1, 0, 2i},
		{0, -0.5, 0},
	})
	require.NoError(t, c.Put("u_3", m))

	got, ok, err := c.Get("u_3")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, got.Equal(m), "%s, expected %s", got, m)
}

func TestMemo(t *testing.T) {
	t.Parallel()
	c, err := New(t.TempDir())
	require.NoError(t, err)

	builds := 0
	build := func() (*mat.COO, error) {
		builds++
		return mat.COOIdentity(4), nil
	}
	for i := 0; i < 3; i++ {
		m, err := c.Memo("id_4", build)
		require.NoError(t, err)
		require.True(t, m.Equal(mat.COOIdentity(4)))
	}
	require.Equal(t, 1, builds)
}
