package adsreport

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio-kirana/kirana-erp/internal/ledger"
	"github.com/studio-kirana/kirana-erp/internal/platform/cache"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type mockRepo struct {
	entries     []ledger.AdEntry
	insertCalls int
}

func (m *mockRepo) List(context.Context) ([]ledger.AdEntry, error) {
	return m.entries, nil
}

func (m *mockRepo) Get(_ context.Context, id string) (ledger.AdEntry, error) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return ledger.AdEntry{}, shared.ErrNotFound
}

func (m *mockRepo) Insert(_ context.Context, e ledger.AdEntry) (ledger.AdEntry, error) {
	m.insertCalls++
	e.ID = "new"
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *mockRepo) Update(_ context.Context, id string, e ledger.AdEntry) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			e.ID = id
			m.entries[i] = e
			return nil
		}
	}
	return shared.ErrNotFound
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func newTestService(repo Repository) *Service {
	return NewService(repo, nil, ledger.DefaultTaxPolicy, nil, nil)
}

func TestCreateDerivesEverything(t *testing.T) {
	repo := &mockRepo{}
	created, err := newTestService(repo).Create(context.Background(), 1, ReportRequest{
		ReportDate:    "2024-05-06",
		Revenue:       2_000_000,
		FeePayment:    200_000,
		AdsSpend:      500_000,
		Leads:         50,
		TotalPurchase: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 1_800_000.0, created.NetRevenue)
	assert.Equal(t, 198_000.0, created.TaxEstimate)
	require.NotNil(t, created.ProfitLoss)
	assert.Equal(t, 1_102_000.0, *created.ProfitLoss)
	assert.Equal(t, 19, created.Week)
	assert.Equal(t, "Mei 2024", created.Month)

	roas := created.ROAS()
	require.True(t, roas.Valid)
	assert.Equal(t, 4.0, roas.Value)
}

func TestCreateRejectsNegativeInput(t *testing.T) {
	repo := &mockRepo{}
	_, err := newTestService(repo).Create(context.Background(), 1, ReportRequest{
		ReportDate: "2024-05-06",
		AdsSpend:   -1,
	})

	var verr *ledger.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "ads_spend")
	assert.Zero(t, repo.insertCalls, "no record may reach the store")
}

func TestListFiltersByMonthLabel(t *testing.T) {
	repo := &mockRepo{entries: []ledger.AdEntry{
		adEntry("2", date(2024, 6, 3)),
		adEntry("1", date(2024, 5, 6)),
	}}

	view, err := newTestService(repo).List(context.Background(), ledger.Criteria{Period: "Mei 2024"})
	require.NoError(t, err)

	require.Len(t, view.Reports, 1)
	assert.Equal(t, "1", view.Reports[0].ID)
	assert.Equal(t, []string{"Juni 2024", "Mei 2024"}, view.Months)
}

func TestListZeroSpendDayHasInvalidRatios(t *testing.T) {
	e := adEntry("1", date(2024, 5, 6))
	e.AdsSpend = 0
	e.Leads = 0
	repo := &mockRepo{entries: []ledger.AdEntry{e}}

	view, err := newTestService(repo).List(context.Background(), ledger.Criteria{})
	require.NoError(t, err)

	require.Len(t, view.Reports, 1)
	assert.False(t, view.Reports[0].ROAS.Valid)
	assert.False(t, view.Reports[0].CostPerLead.Valid)
	assert.False(t, view.Summary.AverageROAS.Valid)
}

func TestSummaryCacheKeyedByFullCriteria(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &mockRepo{entries: []ledger.AdEntry{
		adEntry("2", date(2024, 5, 7)),
		adEntry("1", date(2024, 5, 6)),
	}}
	svc := NewService(repo, cache.NewReportCache(client, time.Minute), ledger.DefaultTaxPolicy, nil, nil)

	unfiltered, err := svc.Summary(context.Background(), ledger.Criteria{Period: "Mei 2024"})
	require.NoError(t, err)
	assert.Equal(t, 1_000_000.0, unfiltered.TotalRevenue)

	searched, err := svc.Summary(context.Background(), ledger.Criteria{Period: "Mei 2024", Search: "2024-05-06"})
	require.NoError(t, err)
	assert.Equal(t, 500_000.0, searched.TotalRevenue, "searched summary must sum the searched rows only")

	again, err := svc.Summary(context.Background(), ledger.Criteria{Period: "Mei 2024"})
	require.NoError(t, err)
	assert.Equal(t, unfiltered, again)
}

func TestUpdateRederivesFromInputs(t *testing.T) {
	repo := &mockRepo{entries: []ledger.AdEntry{adEntry("1", date(2024, 5, 6))}}

	updated, err := newTestService(repo).Update(context.Background(), 1, "1", ReportRequest{
		ReportDate:    "2024-05-07",
		Revenue:       1_000_000,
		FeePayment:    0,
		AdsSpend:      250_000,
		Leads:         20,
		TotalPurchase: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1_000_000.0, updated.NetRevenue)
	require.NotNil(t, updated.ProfitLoss)
	assert.Equal(t, 640_000.0, *updated.ProfitLoss)
}

func TestDeleteMissingReport(t *testing.T) {
	err := newTestService(&mockRepo{}).Delete(context.Background(), 1, "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func adEntry(id string, day time.Time) ledger.AdEntry {
	bucket := ledger.BuildPeriodLabel(day)
	profit := 100_000.0
	return ledger.AdEntry{
		ID:             id,
		Date:           day,
		Revenue:        500_000,
		FeePayment:     50_000,
		AdsSpend:       100_000,
		Leads:          10,
		TotalPurchases: 2,
		NetRevenue:     450_000,
		TaxEstimate:    49_500,
		ProfitLoss:     &profit,
		Week:           bucket.Week,
		Month:          bucket.Month,
	}
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
