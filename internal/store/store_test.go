package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/scribe/internal/config"
)

var (
	_ Gateway = (*Memory)(nil)
	_ Gateway = (*File)(nil)
	_ Gateway = (*SQLite)(nil)
	_ Gateway = (*Redis)(nil)
)

// exercise runs the same save/load/delete sequence against any gateway
func exercise(t *testing.T, g Gateway) {
	t.Helper()
	ctx := context.Background()

	values, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, g.Save(ctx, KeyHTML, "<p>Hello</p>"))
	require.NoError(t, g.Save(ctx, KeyMarkdown, "Hello"))
	require.NoError(t, g.Save(ctx, KeyMode, "wysiwyg"))

	values, err = g.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		KeyHTML:     "<p>Hello</p>",
		KeyMarkdown: "Hello",
		KeyMode:     "wysiwyg",
	}, values)

	require.NoError(t, g.Save(ctx, KeyMode, "markdown"))
	require.NoError(t, g.Save(ctx, KeyHTML, ""))
	values, err = g.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "markdown", values[KeyMode])
	v, ok := values[KeyHTML]
	assert.True(t, ok, "empty values are still present")
	assert.Equal(t, "", v)

	require.NoError(t, g.Delete(ctx, KeyHTML))
	require.NoError(t, g.Delete(ctx, "missing"))
	values, err = g.Load(ctx)
	require.NoError(t, err)
	_, ok = values[KeyHTML]
	assert.False(t, ok)
	assert.Len(t, values, 2)
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestMemoryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory()
	_, err := m.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, m.Save(ctx, KeyHTML, "x"), context.Canceled)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "document.json")
	f := NewFile(path)
	exercise(t, f)

	// A fresh gateway sees what the first one wrote
	values, err := NewFile(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello", values[KeyMarkdown])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFile(path).Load(context.Background())
	assert.Error(t, err)

	err = NewFile(path).Save(context.Background(), KeyHTML, "x")
	assert.Error(t, err, "save must not clobber an unreadable file")
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "scribe.db"))
	require.NoError(t, err)
	defer s.Close()

	exercise(t, s)
}

func TestSQLitePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scribe.db")
	ctx := context.Background()

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, KeyMarkdown, "# Title"))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	values, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "# Title", values[KeyMarkdown])
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	r, err := NewRedis(mr.Addr(), "scribe:test")
	require.NoError(t, err)
	defer r.Close()

	exercise(t, r)
	assert.Equal(t, "markdown", mr.HGet("scribe:test", KeyMode))
}

func TestRedisValidation(t *testing.T) {
	_, err := NewRedis("", "key")
	assert.Error(t, err)

	_, err = NewRedis("127.0.0.1:1", "")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     config.Config
		want    interface{}
		wantErr bool
	}{
		{
			name: "file",
			cfg:  config.Config{StoreBackend: config.BackendFile, StorePath: filepath.Join(dir, "doc.json")},
			want: &File{},
		},
		{
			name: "default is file",
			cfg:  config.Config{StorePath: filepath.Join(dir, "doc.json")},
			want: &File{},
		},
		{
			name: "sqlite",
			cfg:  config.Config{StoreBackend: config.BackendSQLite, StorePath: filepath.Join(dir, "doc.db")},
			want: &SQLite{},
		},
		{
			name: "redis",
			cfg:  config.Config{StoreBackend: config.BackendRedis, RedisAddr: mr.Addr(), RedisKey: "scribe:doc"},
			want: &Redis{},
		},
		{
			name:    "unknown",
			cfg:     config.Config{StoreBackend: "etcd"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			g, err := Open(&cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer g.Close()
			assert.IsType(t, tt.want, g)
		})
	}
}
