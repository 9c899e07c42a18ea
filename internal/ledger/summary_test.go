package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarizeFinanceFilteredMonth(t *testing.T) {
	entries := []FinanceEntry{
		{ID: "1", Date: date(2024, time.May, 1), Kind: KindIncome, Category: CategoryRevenue, Amount: 1_000_000},
		{ID: "2", Date: date(2024, time.May, 15), Kind: KindExpense, Category: CategoryOperational, Amount: 400_000},
		{ID: "3", Date: date(2024, time.June, 2), Kind: KindIncome, Category: CategoryRevenue, Amount: 9_999_999},
	}

	filtered := FilterFinance(entries, Criteria{Period: "2024-05", Kind: KindAll})
	require.Len(t, filtered, 2)

	s := DefaultTaxPolicy.SummarizeFinance(filtered)
	assert.Equal(t, 1_000_000.0, s.TotalIncome)
	assert.Equal(t, 400_000.0, s.TotalExpense)
	assert.Equal(t, 600_000.0, s.Balance)
	assert.Equal(t, 5_000.0, s.EstimatedFinalTax)
}

func TestSummarizeFinanceEmpty(t *testing.T) {
	s := DefaultTaxPolicy.SummarizeFinance(nil)
	assert.Zero(t, s.TotalIncome)
	assert.Zero(t, s.TotalExpense)
	assert.Zero(t, s.Balance)
	assert.Zero(t, s.EstimatedFinalTax)
}

func TestComputeAdDerivation(t *testing.T) {
	entry, err := DefaultTaxPolicy.ComputeAd(AdInput{
		Date:           date(2024, time.May, 6),
		Revenue:        2_000_000,
		FeePayment:     200_000,
		AdsSpend:       500_000,
		Leads:          50,
		TotalPurchases: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 1_800_000.0, entry.NetRevenue)
	assert.Equal(t, 198_000.0, entry.TaxEstimate)
	require.NotNil(t, entry.ProfitLoss)
	assert.Equal(t, 1_102_000.0, *entry.ProfitLoss)

	assert.Equal(t, Ratio{Value: 4.0, Valid: true}, entry.ROAS())
	assert.Equal(t, Ratio{Value: 20.0, Valid: true}, entry.ConversionRate())
	assert.Equal(t, Ratio{Value: 10_000.0, Valid: true}, entry.CostPerLead())
	assert.Equal(t, Ratio{Value: 50_000.0, Valid: true}, entry.CostPerPurchase())

	assert.Equal(t, 19, entry.Week)
	assert.Equal(t, "Mei 2024", entry.Month)
}

func TestNetRevenueMayGoNegative(t *testing.T) {
	entry, err := DefaultTaxPolicy.ComputeAd(AdInput{
		Date:       date(2024, time.May, 6),
		Revenue:    100_000,
		FeePayment: 150_000,
	})
	require.NoError(t, err)
	assert.Equal(t, -50_000.0, entry.NetRevenue)
}

func TestRatiosWithZeroDenominator(t *testing.T) {
	entry, err := DefaultTaxPolicy.ComputeAd(AdInput{
		Date:    date(2024, time.May, 6),
		Revenue: 1_000_000,
	})
	require.NoError(t, err)

	for name, ratio := range map[string]Ratio{
		"roas":              entry.ROAS(),
		"conversion":        entry.ConversionRate(),
		"cost per lead":     entry.CostPerLead(),
		"cost per purchase": entry.CostPerPurchase(),
	} {
		assert.False(t, ratio.Valid, name)
		assert.Zero(t, ratio.Value, name)
		assert.False(t, math.IsNaN(ratio.Value), name)
		assert.False(t, math.IsInf(ratio.Value, 0), name)
	}
}

func TestSummarizeAdsRecomputesMissingProfit(t *testing.T) {
	stored := 1_102_000.0
	entries := []AdEntry{
		{
			Date: date(2024, time.May, 6), Revenue: 2_000_000, FeePayment: 200_000,
			AdsSpend: 500_000, Leads: 50, TotalPurchases: 10, ProfitLoss: &stored,
		},
		{
			// Partially-computed row without a persisted profit figure.
			Date: date(2024, time.May, 13), Revenue: 1_000_000, FeePayment: 100_000,
			AdsSpend: 300_000, Leads: 30, TotalPurchases: 3,
		},
	}

	s := DefaultTaxPolicy.SummarizeAds(entries)
	assert.Equal(t, 3_000_000.0, s.TotalRevenue)
	assert.Equal(t, 800_000.0, s.TotalAdsSpend)
	// Second row: net 900_000, tax 99_000, profit 501_000.
	assert.InDelta(t, 1_603_000.0, s.TotalProfit, 1e-6)
	assert.Equal(t, int64(80), s.TotalLeads)
	assert.Equal(t, int64(13), s.TotalPurchases)
	require.True(t, s.AverageROAS.Valid)
	assert.InDelta(t, 3.75, s.AverageROAS.Value, 1e-9)
	require.True(t, s.AverageConversionRate.Valid)
	assert.InDelta(t, 16.25, s.AverageConversionRate.Value, 1e-9)
}

func TestSummarizeAdsEmpty(t *testing.T) {
	s := DefaultTaxPolicy.SummarizeAds(nil)
	assert.Zero(t, s.TotalRevenue)
	assert.Zero(t, s.TotalProfit)
	assert.False(t, s.AverageROAS.Valid)
	assert.False(t, s.AverageConversionRate.Valid)
}
