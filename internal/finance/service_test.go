package finance

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
	entries     []ledger.FinanceEntry
	insertCalls int
	insertErr   error
}

func (m *mockRepo) List(context.Context) ([]ledger.FinanceEntry, error) {
	return m.entries, nil
}

func (m *mockRepo) Get(_ context.Context, id string) (ledger.FinanceEntry, error) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return ledger.FinanceEntry{}, shared.ErrNotFound
}

func (m *mockRepo) Insert(_ context.Context, e ledger.FinanceEntry) (ledger.FinanceEntry, error) {
	m.insertCalls++
	if m.insertErr != nil {
		return ledger.FinanceEntry{}, m.insertErr
	}
	e.ID = "new"
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *mockRepo) Update(_ context.Context, id string, e ledger.FinanceEntry) error {
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

func TestListFiltersAndSummarizes(t *testing.T) {
	repo := &mockRepo{entries: []ledger.FinanceEntry{
		{ID: "2", Date: date(2024, 5, 15), Kind: ledger.KindExpense, Category: ledger.CategoryOperational, Amount: 400_000},
		{ID: "1", Date: date(2024, 5, 1), Kind: ledger.KindIncome, Category: ledger.CategoryRevenue, Amount: 1_000_000},
		{ID: "0", Date: date(2024, 4, 1), Kind: ledger.KindIncome, Category: ledger.CategoryRevenue, Amount: 777},
	}}

	view, err := newTestService(repo).List(context.Background(), ledger.Criteria{Period: "2024-05", Kind: ledger.KindAll})
	require.NoError(t, err)

	require.Len(t, view.Entries, 2)
	assert.Equal(t, 1_000_000.0, view.Summary.TotalIncome)
	assert.Equal(t, 400_000.0, view.Summary.TotalExpense)
	assert.Equal(t, 600_000.0, view.Summary.Balance)
	assert.Equal(t, 5_000.0, view.Summary.EstimatedFinalTax)
	assert.Equal(t, []string{"2024-05", "2024-04"}, view.Periods)
}

func TestListEmptyStoreIsValid(t *testing.T) {
	view, err := newTestService(&mockRepo{}).List(context.Background(), ledger.Criteria{})
	require.NoError(t, err)
	assert.Empty(t, view.Entries)
	assert.Zero(t, view.Summary.Balance)
}

func TestCreateRejectsNegativeBeforeStore(t *testing.T) {
	repo := &mockRepo{}
	_, err := newTestService(repo).Create(context.Background(), 1, EntryRequest{
		Tanggal: "2024-05-01", Tipe: "income", Kategori: "revenue", Nominal: -1,
	})

	var verr *ledger.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "nominal")
	assert.Zero(t, repo.insertCalls, "no record may reach the store")
}

func TestCreateRejectsUnparseableDate(t *testing.T) {
	repo := &mockRepo{}
	_, err := newTestService(repo).Create(context.Background(), 1, EntryRequest{
		Tanggal: "01/05/2024", Tipe: "income", Kategori: "revenue", Nominal: 100,
	})

	var verr *ledger.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "tanggal")
}

func TestSummaryCacheKeyedByFullCriteria(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &mockRepo{entries: []ledger.FinanceEntry{
		{ID: "2", Date: date(2024, 5, 15), Kind: ledger.KindExpense, Category: ledger.CategoryHosting, Amount: 400_000, Note: "hosting"},
		{ID: "1", Date: date(2024, 5, 1), Kind: ledger.KindIncome, Category: ledger.CategoryRevenue, Amount: 1_000_000, Note: "pelunasan"},
	}}
	svc := NewService(repo, cache.NewReportCache(client, time.Minute), ledger.DefaultTaxPolicy, nil, nil)

	unfiltered, err := svc.Summary(context.Background(), ledger.Criteria{Period: "2024-05"})
	require.NoError(t, err)
	assert.Equal(t, 1_000_000.0, unfiltered.TotalIncome)

	searched, err := svc.Summary(context.Background(), ledger.Criteria{Period: "2024-05", Search: "hosting"})
	require.NoError(t, err)
	assert.Zero(t, searched.TotalIncome, "searched summary must sum the searched rows only")
	assert.Equal(t, 400_000.0, searched.TotalExpense)

	again, err := svc.Summary(context.Background(), ledger.Criteria{Period: "2024-05"})
	require.NoError(t, err)
	assert.Equal(t, unfiltered, again)
}

func TestUpdateIsFullReplace(t *testing.T) {
	repo := &mockRepo{entries: []ledger.FinanceEntry{
		{ID: "1", Date: date(2024, 5, 1), Kind: ledger.KindIncome, Category: ledger.CategoryRevenue, Amount: 100, Note: "lama"},
	}}

	updated, err := newTestService(repo).Update(context.Background(), 1, "1", EntryRequest{
		Tanggal: "2024-05-02", Tipe: "expense", Kategori: "hosting", Nominal: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.KindExpense, updated.Kind)
	assert.Empty(t, repo.entries[0].Note, "full-field replace drops the old note")
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
