package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPeriodLabel(t *testing.T) {
	bucket := BuildPeriodLabel(date(2024, time.January, 1))
	assert.Equal(t, 1, bucket.Week)
	assert.Equal(t, "Januari 2024", bucket.Month)

	// December 29th 2025 belongs to ISO week 1 of 2026.
	bucket = BuildPeriodLabel(date(2025, time.December, 29))
	assert.Equal(t, 1, bucket.Week)
	assert.Equal(t, "Desember 2025", bucket.Month)
}

func TestMonthLabelRoundTrip(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		d := date(2024, month, 17)
		parsed, ok := ParseMonthLabel(MonthLabel(d))
		require.True(t, ok, "month %s", month)
		assert.Equal(t, d.Year(), parsed.Year())
		assert.Equal(t, d.Month(), parsed.Month())
	}
}

func TestParseMonthLabelRejectsUnknown(t *testing.T) {
	for _, label := range []string{"", "Mei", "Smarch 2024", "Mei dua ribu", "Mei 2024 extra"} {
		_, ok := ParseMonthLabel(label)
		assert.False(t, ok, label)
	}
}

func TestMonthOptionsDedupesAndSortsReverseChronologically(t *testing.T) {
	got := MonthOptions([]string{
		"Mei 2024", "Juni 2024", "Mei 2024", "Desember 2023", "Juni 2024",
	})
	assert.Equal(t, []string{"Juni 2024", "Mei 2024", "Desember 2023"}, got)
}

func TestMonthOptionsKeepsUnparseableLabelsStable(t *testing.T) {
	// Unparseable labels rank equal to everything, so nothing crosses them
	// and the input order survives.
	got := MonthOptions([]string{"garbage", "Mei 2024", "also garbage", "Juni 2024"})
	assert.Equal(t, []string{"garbage", "Mei 2024", "also garbage", "Juni 2024"}, got)
}
