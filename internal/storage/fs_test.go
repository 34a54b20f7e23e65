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

func TestFSStore_PutGetList(t *testing.T) {
	ctx := context.Background()
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	k, err := s.Put(ctx, "exports/rekap-1.csv", strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, "exports/rekap-1.csv", k)
	_, err = s.Put(ctx, "exports/rekap-2.csv", strings.NewReader("c\n"))
	require.NoError(t, err)
	_, err = s.Put(ctx, "other/x.txt", strings.NewReader("x"))
	require.NoError(t, err)

	rc, err := s.Get(ctx, k)
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "a,b\n", string(b))

	keys, err := s.List(ctx, "exports/")
	require.NoError(t, err)
	assert.Equal(t, []string{"exports/rekap-1.csv", "exports/rekap-2.csv"}, keys)

	u, err := s.SignedURL(k)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "file://"))
}

func TestFSStore_KeysStayInsideBase(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewFSStore(filepath.Join(base, "blobs"))
	require.NoError(t, err)

	k, err := s.Put(ctx, "../../escape.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", k)
	_, err = os.Stat(filepath.Join(base, "blobs", "escape.txt"))
	assert.NoError(t, err)

	_, err = s.Put(ctx, "", strings.NewReader("x"))
	assert.Error(t, err)
}
