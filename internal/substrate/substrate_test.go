package substrate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func TestSubstrates_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	fileStore, err := NewFile(filepath.Join(dir, "files"))
	require.NoError(t, err)
	sqliteStore, err := NewSQLite(filepath.Join(dir, "db", "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	tests := []struct {
		name   string
		sub    Substrate
		driver Driver
	}{
		{name: "memory", sub: NewMemory(), driver: DriverMemory},
		{name: "file", sub: fileStore, driver: DriverFile},
		{name: "sqlite", sub: sqliteStore, driver: DriverSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			assert.Equal(t, tt.driver, tt.sub.Driver())

			_, err := tt.sub.Get(ctx, "lumina_cart:abc")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, tt.sub.Set(ctx, "lumina_cart:abc", []byte(`[{"id":"p1"}]`)))
			got, err := tt.sub.Get(ctx, "lumina_cart:abc")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"p1"}]`, string(got))

			require.NoError(t, tt.sub.Set(ctx, "lumina_cart:abc", []byte(`[]`)))
			got, err = tt.sub.Get(ctx, "lumina_cart:abc")
			require.NoError(t, err)
			assert.Equal(t, "[]", string(got))

			require.NoError(t, tt.sub.Delete(ctx, "lumina_cart:abc"))
			_, err = tt.sub.Get(ctx, "lumina_cart:abc")
			assert.ErrorIs(t, err, ErrNotFound)

			// deleting a missing key is not an error
			assert.NoError(t, tt.sub.Delete(ctx, "missing"))
		})
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	value := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
	assert.ElementsMatch(t, []string{"k"}, m.Keys())
}

func TestFile_RejectsEmptyKey(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, f.Set(context.Background(), " ", []byte("x")))
	_, err = f.Get(context.Background(), "")
	assert.Error(t, err)
}

func TestFile_KeysStayInsideRoot(t *testing.T) {
	root := t.TempDir()
	f, err := NewFile(root)
	require.NoError(t, err)

	require.NoError(t, f.Set(context.Background(), "../escape", []byte("x")))
	matches, err := filepath.Glob(filepath.Join(root, "*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		driver  Driver
		wantErr bool
	}{
		{name: "memory", cfg: config.Config{StoreDriver: "memory"}, driver: DriverMemory},
		{name: "file", cfg: config.Config{StoreDriver: "file", DataDir: t.TempDir()}, driver: DriverFile},
		{name: "sqlite", cfg: config.Config{StoreDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "s.db")}, driver: DriverSQLite},
		{name: "s3 without bucket", cfg: config.Config{StoreDriver: "s3"}, wantErr: true},
		{name: "unknown", cfg: config.Config{StoreDriver: "floppy"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			sub, err := Open(context.Background(), &cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = sub.Close() })
			assert.Equal(t, tt.driver, sub.Driver())
		})
	}
}
