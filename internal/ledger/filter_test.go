package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFinance() []FinanceEntry {
	return []FinanceEntry{
		{ID: "3", Date: date(2024, time.June, 20), Kind: KindIncome, Category: CategoryRevenue, Amount: 500_000, Note: "DP website toko"},
		{ID: "2", Date: date(2024, time.May, 15), Kind: KindExpense, Category: CategoryHosting, Amount: 150_000, Note: "perpanjangan hosting"},
		{ID: "1", Date: date(2024, time.May, 1), Kind: KindIncome, Category: CategoryRevenue, Amount: 1_000_000, Note: "pelunasan proyek"},
	}
}

func TestFilterFinanceByPeriodAndKind(t *testing.T) {
	entries := sampleFinance()

	got := FilterFinance(entries, Criteria{Period: "2024-05", Kind: KindIncome})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got = FilterFinance(entries, Criteria{Period: "all", Kind: KindAll})
	assert.Len(t, got, 3)
}

func TestFilterFinancePreservesOrderWithoutMutating(t *testing.T) {
	entries := sampleFinance()
	got := FilterFinance(entries, Criteria{Period: "2024-05"})
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "1", got[1].ID)
	assert.Len(t, entries, 3)
}

func TestFilterFinanceSearchIsCaseInsensitive(t *testing.T) {
	got := FilterFinance(sampleFinance(), Criteria{Search: "HOSTING"})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestFilterFinanceIdempotent(t *testing.T) {
	c := Criteria{Period: "2024-05", Kind: KindExpense, Search: "hosting"}
	once := FilterFinance(sampleFinance(), c)
	twice := FilterFinance(once, c)
	assert.Equal(t, once, twice)
}

func TestFilterFinanceEmptyResultIsValid(t *testing.T) {
	got := FilterFinance(sampleFinance(), Criteria{Period: "2030-01"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterAdsByMonthAndDateSearch(t *testing.T) {
	entries := []AdEntry{
		{ID: "b", Date: date(2024, time.June, 3), Month: "Juni 2024"},
		{ID: "a", Date: date(2024, time.May, 6), Month: "Mei 2024"},
	}

	got := FilterAds(entries, Criteria{Period: "Mei 2024"})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	got = FilterAds(entries, Criteria{Search: "2024-06"})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}
