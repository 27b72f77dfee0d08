package memo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsdeck/dto"
)

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, msg string, kv ...any)              {}
func (nopLogger) Error(ctx context.Context, msg string, err error, kv ...any) {}
func (nopLogger) WithFields(ctx context.Context, kv ...any) context.Context {
	return ctx
}

const databases = `[
	{"id": "1", "name": "orders", "server": "sqlprod01", "environment": "prod", "engine": "sqlserver", "size_gb": 120, "online": true},
	{"id": "2", "name": "audit", "server": "sqldev01", "environment": "dev", "engine": "postgres", "size_gb": 4.5}
]`

func writeExport(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "databases.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestMemo_LoadAndRefresh(t *testing.T) {
	ctx := context.Background()
	path := writeExport(t, databases)

	mm, err := New(dto.Databases, nopLogger{})
	require.NoError(t, err)
	require.NoError(t, mm.Load(ctx, path))

	assert.Equal(t, "databases.json (database)", mm.Name())
	assert.Equal(t, "id", mm.Fields()[0].Name)

	records, err := mm.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "orders", records[0].Get("name").String())

	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))
	records, err = mm.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMemo_LoadInvalid(t *testing.T) {
	ctx := context.Background()

	mm, err := New(dto.Databases, nopLogger{})
	require.NoError(t, err)

	err = mm.Load(ctx, writeExport(t, `[{"id": "1"}]`))
	assert.Error(t, err)

	_, err = mm.Records(ctx)
	assert.Error(t, err)

	err = mm.Load(ctx, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(dto.Kind("ticket"), nopLogger{})
	assert.Error(t, err)
}
