package recordfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []domain.WorkLog {
	return []domain.WorkLog{
		{Date: "25-04-03", OP: 7027, Operator: "Nelson Rangel", Activity: "REUNION DE SEGUIMIENTO ECOPETROL", OrdinaryHours: 50, Team: "30"},
		{Date: "25-04-03", OP: 7028, Operator: "Nelson Rangel", Activity: "REUNION DE SEGUIMIENTO ECOPETROL", OrdinaryHours: 50, Team: "30"},
		{Date: "25-04-04", OP: 7030, Operator: "Nelson Rangel", Activity: "DISEÑO <PLANOS> & REVISION", OrdinaryHours: 250, OvertimeHours: 150, Team: "30"},
	}
}

func TestFileName(t *testing.T) {
	ts := time.Date(2025, 4, 3, 10, 15, 0, 0, time.UTC)

	assert.Equal(t, "nelson_rangel_20250403_101500.json", FileName("Nelson Rangel", ts))
	assert.Equal(t, "desconocido_20250403_101500.json", FileName("  ", ts))
	assert.Equal(t, "a_b_20250403_101500.json", FileName("A/B", ts))
}

func TestSaveLoad_RoundTripPreservesOrder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	ts := time.Date(2025, 4, 3, 10, 15, 0, 0, time.UTC)
	want := sampleRecords()

	path, err := Save(dir, "Nelson Rangel", ts, want)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nelson_rangel_20250403_101500.json"), path)

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_WireFormat(t *testing.T) {
	ts := time.Date(2025, 4, 3, 10, 15, 0, 0, time.UTC)

	path, err := Save(t.TempDir(), "Nelson Rangel", ts, sampleRecords()[2:])
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"fecha": "25-04-04",
		"OP": 7030,
		"operario": "Nelson Rangel",
		"actividad": "DISEÑO <PLANOS> & REVISION",
		"tiempo_ordinario": "2.5",
		"tiempo_extra": "1.5",
		"equipo": "30"
	}]`, string(data))
	assert.Contains(t, string(data), "<PLANOS> &")
	assert.Contains(t, string(data), "\n  {\n    \"fecha\"")
}

func TestSave_EmptySetWritesArray(t *testing.T) {
	path, err := Save(t.TempDir(), "x", time.Now(), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"OP":"x"}]`), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoad_RejectsRecordsBreakingInvariants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edited.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"fecha":"25-04-03","OP":7027,"operario":"Nelson Rangel","actividad":"DISEÑO","tiempo_ordinario":"1","tiempo_extra":"0","equipo":"30"},
		{"fecha":"25-04-03","OP":0,"operario":"","actividad":"DISEÑO","tiempo_ordinario":"0.3","tiempo_extra":"-1","equipo":""}
	]`), 0o644))

	records, err := Load(path)
	require.ErrorIs(t, err, domain.ErrInvalidWorkLog)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "record 2")
	assert.NotContains(t, err.Error(), "record 1:")
}
