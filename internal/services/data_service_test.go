package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epspulse/internal/config"
	v1 "epspulse/pkg/contracts/api/v1"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedNow pins the wall clock so the annual trailing-year exclusion is
// deterministic.
var fixedNow = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func writeTestCSV(t *testing.T) string {
	t.Helper()
	content := strings.Join([]string{
		"Acme,,,,Globex,,",
		"2021-03-15,1.0,10,,2021-03-20,2.0,20",
		"2021-06-15,1.2,12,,2021-06-20,2.2,22",
		"2022-03-15,1.4,14,,,,",
		"2024-03-15,9.9,99,,,,",
	}, "\n")

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestService(t *testing.T) *DataService {
	t.Helper()
	svc := NewDataService(
		config.DataConfig{Source: "csv", Path: writeTestCSV(t)},
		testLogger(),
		WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestCompanies(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Companies(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Companies, 2)
	assert.Equal(t, "Acme", resp.Companies[0].Name)
	assert.Equal(t, 4, resp.Companies[0].Observations)
	assert.Equal(t, 2021, resp.Companies[0].MinYear)
	assert.Equal(t, 2024, resp.Companies[0].MaxYear)
	assert.Equal(t, "Globex", resp.Companies[1].Name)
	assert.NotEmpty(t, resp.LoadID)
}

func TestCompaniesBeforeLoad(t *testing.T) {
	svc := NewDataService(config.DataConfig{Source: "csv", Path: "missing.csv"}, testLogger())

	_, err := svc.Companies(context.Background())
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)
}

func TestChartQuarterly(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Chart(context.Background(), v1.ChartRequest{
		Company:     "Acme",
		Granularity: "quarterly",
		FromYear:    2021,
		ToYear:      2021,
	})
	require.NoError(t, err)

	assert.Equal(t, "QoQ", resp.GrowthLabel)
	assert.False(t, resp.NoData)
	require.Len(t, resp.Points, 2)
	assert.Equal(t, 31, resp.Points[0].Date.Day())
	assert.Equal(t, time.March, resp.Points[0].Date.Month())
	require.Len(t, resp.Growth, 1)
	assert.InDelta(t, 20.0, resp.Growth[0].EPSGrowthPct, 1e-9)
}

func TestChartAnnualExcludesCurrentYear(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Chart(context.Background(), v1.ChartRequest{
		Company:     "Acme",
		Granularity: "annual",
	})
	require.NoError(t, err)

	assert.Equal(t, "YoY", resp.GrowthLabel)
	// 2024 observation exists but falls in the clock's current year.
	require.Len(t, resp.Points, 2)
	assert.Equal(t, 2021, resp.Points[0].Period.Year)
	assert.Equal(t, 2022, resp.Points[1].Period.Year)
}

func TestChartDefaultsRangeToObservedYears(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Chart(context.Background(), v1.ChartRequest{
		Company:     "Globex",
		Granularity: "quarterly",
	})
	require.NoError(t, err)

	assert.Equal(t, 2021, resp.FromYear)
	assert.Equal(t, 2021, resp.ToYear)
	assert.Len(t, resp.Points, 2)
}

func TestChartUnknownCompany(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Chart(context.Background(), v1.ChartRequest{
		Company:     "Initech",
		Granularity: "annual",
	})
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestChartInvalidRange(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Chart(context.Background(), v1.ChartRequest{
		Company:     "Acme",
		Granularity: "annual",
		FromYear:    2023,
		ToYear:      2021,
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestChartBadGranularity(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Chart(context.Background(), v1.ChartRequest{
		Company:     "Acme",
		Granularity: "weekly",
	})
	assert.ErrorIs(t, err, ErrBadGranularity)
}

func TestChartNoDataInRange(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Chart(context.Background(), v1.ChartRequest{
		Company:     "Globex",
		Granularity: "quarterly",
		FromYear:    1999,
		ToYear:      2000,
	})
	require.NoError(t, err)

	assert.True(t, resp.NoData)
	assert.Empty(t, resp.Points)
	assert.Empty(t, resp.Growth)
}

func TestLoadFailureKeepsPreviousDataset(t *testing.T) {
	path := writeTestCSV(t)
	svc := NewDataService(config.DataConfig{Source: "csv", Path: path}, testLogger())
	require.NoError(t, svc.Load(context.Background()))
	firstID := svc.Dataset().LoadID

	require.NoError(t, os.Remove(path))
	require.Error(t, svc.Load(context.Background()))

	assert.Equal(t, firstID, svc.Dataset().LoadID, "failed reload must not clear the dataset")
}

type stubNotifier struct {
	loadID    string
	companies int
	calls     int
}

func (s *stubNotifier) BroadcastReload(loadID string, companies int) {
	s.loadID = loadID
	s.companies = companies
	s.calls++
}

func TestLoadNotifies(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewDataService(
		config.DataConfig{Source: "csv", Path: writeTestCSV(t)},
		testLogger(),
		WithNotifier(notifier),
	)
	require.NoError(t, svc.Load(context.Background()))

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, svc.Dataset().LoadID, notifier.loadID)
	assert.Equal(t, 2, notifier.companies)
}
