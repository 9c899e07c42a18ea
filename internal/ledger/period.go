package ledger

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// monthNames is the fixed table used both to render month labels and to
// re-parse them when sorting filter options.
var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// PeriodBucket is the pair of period labels derived from an entry date.
type PeriodBucket struct {
	// Week is the ISO 8601 week number.
	Week int
	// Month is the localized "<month name> <year>" label.
	Month string
}

// BuildPeriodLabel buckets a date into its ISO week number and month label.
func BuildPeriodLabel(date time.Time) PeriodBucket {
	_, week := date.ISOWeek()
	return PeriodBucket{Week: week, Month: MonthLabel(date)}
}

// MonthLabel renders the localized month-year label for a date.
func MonthLabel(date time.Time) string {
	return monthNames[date.Month()-1] + " " + strconv.Itoa(date.Year())
}

// ParseMonthLabel resolves a "<month name> <year>" label back to the first
// day of that month. ok is false for anything outside the fixed table.
func ParseMonthLabel(label string) (time.Time, bool) {
	parts := strings.Fields(strings.TrimSpace(label))
	if len(parts) != 2 {
		return time.Time{}, false
	}
	month := 0
	for i, name := range monthNames {
		if strings.EqualFold(parts[0], name) {
			month = i + 1
			break
		}
	}
	if month == 0 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
}

// MonthOptions deduplicates stored month labels and sorts them
// reverse-chronologically. Labels that fail to re-parse keep their relative
// order and sort as equal rank instead of erroring.
func MonthOptions(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	options := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		options = append(options, label)
	}
	sort.SliceStable(options, func(i, j int) bool {
		ti, oki := ParseMonthLabel(options[i])
		tj, okj := ParseMonthLabel(options[j])
		if !oki || !okj {
			return false
		}
		return ti.After(tj)
	})
	return options
}
