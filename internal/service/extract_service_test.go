package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/extraction"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/recordfile"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/repository"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2025, 4, 3, 17, 30, 0, 0, time.UTC)

// writeWorkbook creates an .xlsx with one row per sheet name; sheets mapped
// to nil are left empty.
func writeWorkbook(t *testing.T, sheets []string, empty map[string]bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "HORAS NELSON RANGEL.xlsx")
	f := excelize.NewFile()
	for i, name := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		if empty[name] {
			continue
		}
		require.NoError(t, f.SetCellValue(name, "A1", "FECHA: 03/04/2025"))
		require.NoError(t, f.SetCellValue(name, "A2", "7027-7028-7029"))
		require.NoError(t, f.SetCellValue(name, "B2", "REUNION DE SEGUIMIENTO"))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

const abril3 = "```json\n[" +
	`{"fecha":"03/04/2025","operario":"NOMBRE: NELSON RANGEL","OP":"7027-7028-7029","actividad":"REUNION DE SEGUIMIENTO ECOPETROL","tiempo":"1,5"},` +
	`{"fecha":"03/04/2025","operario":"NELSON RANGEL","OP":7030,"actividad":"ADMINISTRACION","tiempo":"2"},` +
	`{"fecha":"sin fecha","operario":"NELSON RANGEL","OP":"7031","actividad":"MONTAJE","tiempo":"1"}` +
	"]\n```"

const abril4 = `{"registros":[{"fecha":"04/04/2025","operario":"NELSON RANGEL","OP":"9000","actividad":"OTROS","tiempo":8.5,"tiempo_extra":"1"}]}`

func newExtractFixture(t *testing.T, fake *extraction.Recorded, logger *zap.Logger) (*extractService, *repository.SQLiteRunRepo, *repository.SQLiteWorkLogRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	svc := NewExtractService(fake, testutil.NewTestUoW(database), logger).(*extractService)
	svc.now = func() time.Time { return fixedNow }
	return svc, repository.NewSQLiteRunRepo(database), repository.NewSQLiteWorkLogRepo(database)
}

func TestExtract_Pipeline(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	fake := &extraction.Recorded{
		Responses: map[string]string{"ABRIL 3": abril3, "ABRIL 4": abril4},
		Errs:      map[string]error{"ABRIL 5": errors.New("service unavailable")},
	}
	svc, runs, workLogs := newExtractFixture(t, fake, zap.New(core))
	source := writeWorkbook(t, []string{"ABRIL 3", "VACIA", "ABRIL 4", "ABRIL 5"}, map[string]bool{"VACIA": true})
	out := filepath.Join(t.TempDir(), "output")

	result, err := svc.Extract(context.Background(), ExtractRequest{SourcePath: source, Team: "30", OutDir: out})
	require.NoError(t, err)

	assert.Equal(t, []string{"ABRIL 3", "ABRIL 4", "ABRIL 5"}, fake.Calls)
	require.Len(t, result.Records, 5)
	for _, r := range result.Records[:3] {
		assert.Equal(t, domain.HalfHour, r.OrdinaryHours)
		assert.Equal(t, "25-04-03", r.Date)
		assert.Equal(t, "Nelson Rangel", r.Operator)
		assert.Equal(t, "30", r.Team)
	}
	assert.Equal(t, []int{7027, 7028, 7029, 7030, 9000}, []int{
		result.Records[0].OP, result.Records[1].OP, result.Records[2].OP,
		result.Records[3].OP, result.Records[4].OP,
	})
	assert.Equal(t, domain.Hours(850), result.Records[4].OrdinaryHours)
	assert.Equal(t, domain.OneHour, result.Records[4].OvertimeHours)

	stats := result.Run.Stats
	assert.Equal(t, "Nelson Rangel", stats.Operator)
	assert.Equal(t, 5, stats.Records)
	assert.Equal(t, 5, stats.DistinctOPs)
	assert.Equal(t, domain.Hours(1200), stats.TotalHours)
	assert.Equal(t, []string{"25-04-03", "25-04-04"}, stats.Dates)
	assert.Equal(t, 4, stats.SheetsFound)
	assert.Equal(t, 2, stats.SheetsRead)
	assert.Equal(t, 2, stats.SheetsSkipped)
	assert.Equal(t, 4, stats.Candidates)
	assert.Equal(t, 1, stats.Rejected)

	assert.Equal(t, filepath.Join(out, recordfile.FileName("Nelson Rangel", fixedNow)), result.Run.RecordFile)
	saved, err := recordfile.Load(result.Run.RecordFile)
	require.NoError(t, err)
	assert.Equal(t, result.Records, saved)

	stored, err := runs.GetByID(context.Background(), result.Run.ID)
	require.NoError(t, err)
	assert.Equal(t, stats, stored.Stats)
	assert.Equal(t, source, stored.SourcePath)

	ledger, err := workLogs.ListByRun(context.Background(), result.Run.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 5)
	assert.Equal(t, 1, ledger[0].Seq)
	assert.Equal(t, result.Records[4], ledger[4].Log)

	assert.Equal(t, 1, logs.FilterMessage("candidate dropped").Len())
	skipped := logs.FilterMessage("skipping sheet").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "ABRIL 5", skipped[0].ContextMap()["sheet"])
}

func TestExtract_GroupRejectionCountsEveryShare(t *testing.T) {
	fake := &extraction.Recorded{Responses: map[string]string{
		"ABRIL 3": `[{"fecha":"03/04/2025","operario":"NELSON RANGEL","OP":"7027-7028","actividad":"","tiempo":"3"},` +
			`{"fecha":"03/04/2025","operario":"NELSON RANGEL","OP":"7030","actividad":"ADMINISTRACION","tiempo":"2"}]`,
	}}
	svc, _, _ := newExtractFixture(t, fake, nil)
	source := writeWorkbook(t, []string{"ABRIL 3"}, nil)

	result, err := svc.Extract(context.Background(), ExtractRequest{SourcePath: source, Team: "30", OutDir: t.TempDir()})
	require.NoError(t, err)

	assert.Len(t, result.Records, 1)
	assert.Equal(t, 2, result.Run.Stats.Rejected)
	assert.Equal(t, 2, result.Run.Stats.Candidates)
}

func TestExtract_NoRecords(t *testing.T) {
	down := errors.New("service unavailable")
	fake := &extraction.Recorded{Errs: map[string]error{"ABRIL 3": down}}
	svc, runs, _ := newExtractFixture(t, fake, nil)
	source := writeWorkbook(t, []string{"ABRIL 3"}, nil)
	out := filepath.Join(t.TempDir(), "output")

	_, err := svc.Extract(context.Background(), ExtractRequest{SourcePath: source, Team: "30", OutDir: out})
	assert.ErrorIs(t, err, ErrNoRecords)
	assert.ErrorIs(t, err, down)
	assert.NoDirExists(t, out)

	all, err := runs.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExtract_EmptyResponsesYieldNoRecords(t *testing.T) {
	fake := &extraction.Recorded{Responses: map[string]string{"ABRIL 3": "[]"}}
	svc, _, _ := newExtractFixture(t, fake, nil)
	source := writeWorkbook(t, []string{"ABRIL 3"}, nil)

	_, err := svc.Extract(context.Background(), ExtractRequest{SourcePath: source, Team: "30", OutDir: t.TempDir()})
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestExtract_NoSheets(t *testing.T) {
	svc, _, _ := newExtractFixture(t, &extraction.Recorded{}, nil)
	source := writeWorkbook(t, []string{"VACIA"}, map[string]bool{"VACIA": true})

	_, err := svc.Extract(context.Background(), ExtractRequest{SourcePath: source, Team: "30", OutDir: t.TempDir()})
	assert.ErrorIs(t, err, ErrNoSheets)
}

func TestExtract_MissingSource(t *testing.T) {
	fake := &extraction.Recorded{}
	svc, _, _ := newExtractFixture(t, fake, nil)

	_, err := svc.Extract(context.Background(), ExtractRequest{
		SourcePath: filepath.Join(t.TempDir(), "nope.xlsx"),
		OutDir:     t.TempDir(),
	})
	assert.Error(t, err)
	assert.Empty(t, fake.Calls)
}

func TestExtract_CancelledContext(t *testing.T) {
	fake := &extraction.Recorded{Responses: map[string]string{"ABRIL 3": abril3}}
	svc, _, _ := newExtractFixture(t, fake, nil)
	source := writeWorkbook(t, []string{"ABRIL 3"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Extract(ctx, ExtractRequest{SourcePath: source, Team: "30", OutDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract_LedgerRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	injected := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: injected}
	fake := &extraction.Recorded{Responses: map[string]string{"ABRIL 3": abril3}}
	svc := NewExtractService(fake, uow, nil)
	source := writeWorkbook(t, []string{"ABRIL 3"}, nil)

	_, err := svc.Extract(context.Background(), ExtractRequest{SourcePath: source, Team: "30", OutDir: t.TempDir()})
	require.ErrorIs(t, err, injected)

	all, err := repository.NewSQLiteRunRepo(database).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	logs, err := repository.NewSQLiteWorkLogRepo(database).Find(context.Background(), repository.WorkLogFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestExtract_ObservesUseCase(t *testing.T) {
	obs := &recordingObserver{}
	fake := &extraction.Recorded{Responses: map[string]string{"ABRIL 3": abril3}}
	database := testutil.NewTestDB(t)
	svc := NewExtractService(fake, testutil.NewTestUoW(database), nil, obs)
	source := writeWorkbook(t, []string{"ABRIL 3"}, nil)

	result, err := svc.Extract(context.Background(), ExtractRequest{SourcePath: source, Team: "30", OutDir: t.TempDir()})
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	ev := obs.events[0]
	assert.Equal(t, "extract", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, result.Run.ID, ev.Fields["run_id"])
	assert.Equal(t, 4, ev.Fields["records"])
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	r.events = append(r.events, ev)
}
