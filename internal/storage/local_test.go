package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalCreatesEagerDirs(t *testing.T) {
	root := t.TempDir()

	_, err := NewLocal(root, "team", "gallery")
	require.NoError(t, err)

	for _, dir := range []string{"team", "gallery"} {
		st, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		assert.True(t, st.IsDir())
	}
}

func TestLocalPutGetDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	info, err := s.Put(ctx, "team/a.webp", strings.NewReader("payload"), PutObjectOptions{ContentType: "image/webp"})
	require.NoError(t, err)
	assert.Equal(t, "team/a.webp", info.Key)
	assert.Equal(t, int64(7), info.Size)

	rc, got, err := s.Get(ctx, "team/a.webp")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "payload", string(b))
	assert.Equal(t, int64(7), got.Size)

	ok, err := s.Exists(ctx, "team/a.webp")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "team/a.webp"))

	ok, err = s.Exists(ctx, "team/a.webp")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalDeleteMissingReturnsErrNotExist(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	err = s.Delete(context.Background(), "team/gone.webp")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalGetMissingReturnsErrNotExist(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, _, err = s.Get(context.Background(), "team/gone.webp")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalRejectsTraversalKeys(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../escape.txt", "/abs.txt", "team/../../escape.txt", "."} {
		_, err := s.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{})
		assert.Error(t, err, key)
	}
}

func TestLocalRoot(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocal(root)
	require.NoError(t, err)

	got, ok := LocalRoot(s)
	assert.True(t, ok)
	assert.Equal(t, root, got)
}
