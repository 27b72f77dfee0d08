package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "opsdeck/entity"
)

func TestDecode_Health(t *testing.T) {
	data := `[
		{"id": "h1", "database": "orders", "server": "SQLPROD01\\OLTP", "score": 91.5, "status": "ok", "issues": 0,
		 "checked_at": "2026-10-01T08:00:00Z"},
		{"id": "h2", "database": "audit", "server": "sqldev01", "status": "unknown"}
	]`

	records, err := Decode(Health, []byte(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	score, err := records[0].Get("score").Float()
	require.NoError(t, err)
	assert.Equal(t, 91.5, score)
	assert.Equal(t, nt.Time, records[0].Get("checked_at").Kind())

	assert.True(t, records[1].Get("score").IsNull())
	assert.True(t, records[1].Get("checked_at").IsNull())
	assert.True(t, records[1].Has("score"))
}

func TestDecode_CredentialDropsSecret(t *testing.T) {
	data := `[{"id": "c1", "name": "etl", "username": "svc_etl", "type": "service", "secret": "hunter2"}]`

	records, err := Decode(Credentials, []byte(data))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.False(t, records[0].Has("secret"))
	for _, val := range records[0] {
		assert.NotEqual(t, "hunter2", val.String())
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		data string
		want string
	}{
		{"bad json", Databases, `{"id": 1}`, "failed to unmarshal"},
		{"missing required", Databases, `[{"id": "d1", "server": "sql01", "environment": "prod", "engine": "postgres"}]`, "index 0"},
		{"bad enum", Backups, `[{"id": "b1", "database": "x", "server": "sql01", "type": "weekly", "status": "failed",
			"started_at": "2026-10-01T00:00:00Z"}]`, "index 0"},
		{"bad instance", Databases, `[{"id": "d1", "name": "n", "server": "sql 01", "environment": "prod", "engine": "postgres"}]`, "index 0"},
		{"score out of range", Health, `[{"id": "h", "database": "d", "server": "s", "status": "ok", "score": 101}]`, "index 0"},
		{"shift ends before start", OnCall, `[{"id": "o", "engineer": "kim", "email": "kim@example.com", "tier": 1,
			"from": "2026-10-02T00:00:00Z", "to": "2026-10-01T00:00:00Z"}]`, "index 0"},
		{"bad email", OnCall, `[{"id": "o", "engineer": "kim", "email": "kim", "tier": 1,
			"from": "2026-10-01T00:00:00Z", "to": "2026-10-02T00:00:00Z"}]`, "index 0"},
		{"unknown kind", Kind("ticket"), `[]`, "unknown record kind"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.kind, []byte(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDecode_SecondEntryInvalid(t *testing.T) {
	data := `[
		{"id": "p1", "server": "sql01", "patch": "KB500", "status": "planned",
		 "start": "2026-10-03T22:00:00Z", "end": "2026-10-04T02:00:00Z"},
		{"id": "p2", "server": "sql02", "patch": "KB501", "status": "someday",
		 "start": "2026-10-03T22:00:00Z", "end": "2026-10-04T02:00:00Z"}
	]`

	_, err := Decode(Patches, []byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}

func TestDecode_EveryFieldDeclared(t *testing.T) {
	samples := map[Kind]Entry{
		Databases:   Database{Id: "d", Name: "n", Server: "s", Environment: "prod", Engine: "postgres"},
		Backups:     Backup{Id: "b", StartedAt: time.Now()},
		Health:      HealthScore{Id: "h"},
		Credentials: Credential{Id: "c"},
		OnCall:      Shift{Id: "o"},
		Patches:     PatchWindow{Id: "p"},
	}

	for _, kind := range Kinds() {
		fields, err := Fields(kind)
		require.NoError(t, err)

		rec := samples[kind].Record()
		assert.Len(t, rec, len(fields), kind)
		for _, f := range fields {
			assert.True(t, rec.Has(f.Name), "%s lacks %s", kind, f.Name)
		}
	}
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []Kind{Backups, Credentials, Databases, Health, OnCall, Patches}, Kinds())

	_, err := Fields(Kind("nope"))
	assert.Error(t, err)
}
