package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFinanceAcceptsZeroAmount(t *testing.T) {
	entry, err := ValidateFinance(FinanceInput{
		Date:     date(2024, time.May, 1),
		Kind:     KindExpense,
		Category: CategoryOther,
		Note:     "  koreksi  ",
	})
	require.NoError(t, err)
	assert.Zero(t, entry.Amount)
	assert.Equal(t, "koreksi", entry.Note)
}

func TestValidateFinanceRejectsNegativeAmount(t *testing.T) {
	_, err := ValidateFinance(FinanceInput{
		Date:     date(2024, time.May, 1),
		Kind:     KindIncome,
		Category: CategoryRevenue,
		Amount:   -1,
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "nominal")
}

func TestValidateFinanceCollectsAllFields(t *testing.T) {
	_, err := ValidateFinance(FinanceInput{Kind: "transfer", Category: "misc", Amount: -5})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 4)
	assert.Contains(t, verr.Fields, "tanggal")
	assert.Contains(t, verr.Fields, "tipe")
	assert.Contains(t, verr.Fields, "kategori")
	assert.Contains(t, verr.Fields, "nominal")
}

func TestComputeAdRejectsNegativeSpend(t *testing.T) {
	_, err := DefaultTaxPolicy.ComputeAd(AdInput{
		Date:     date(2024, time.May, 6),
		AdsSpend: -1,
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "ads_spend")
	assert.Len(t, verr.Fields, 1)
	assert.Equal(t, "ads spend tidak boleh negatif", verr.Fields["ads_spend"])
}

func TestValidationMessagesAreIndonesian(t *testing.T) {
	_, err := DefaultTaxPolicy.ComputeAd(AdInput{Revenue: -1, Leads: -1})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	for field, msg := range verr.Fields {
		assert.NotContains(t, msg, "must", field)
		assert.NotContains(t, msg, "required", field)
	}
}

func TestValidationErrorNamesFields(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"ads_spend": "ads spend tidak boleh negatif",
		"leads":     "leads tidak boleh negatif",
	}}
	assert.Equal(t, "validation failed: ads_spend, leads", err.Error())
}
