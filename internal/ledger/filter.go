package ledger

import "strings"

// Criteria narrows an entry list. Zero values disable the corresponding
// check, so the zero Criteria matches everything.
type Criteria struct {
	// Period is matched as a prefix of the entry's bucketed period label:
	// "2006-01" keys for finance, month labels for ads. Empty or "all"
	// disables period filtering.
	Period string
	// Kind applies to finance entries only. Empty or KindAll matches both.
	Kind Kind
	// Search matches case-insensitively against the note (finance) or the
	// formatted date (ads).
	Search string
}

// FilterFinance returns the entries matching c, preserving relative order.
// The input slice is never mutated and an empty result is valid.
func FilterFinance(entries []FinanceEntry, c Criteria) []FinanceEntry {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]FinanceEntry, 0, len(entries))
	for _, e := range entries {
		if !periodMatches(e.PeriodKey(), c.Period) {
			continue
		}
		if c.Kind != "" && c.Kind != KindAll && e.Kind != c.Kind {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Note), search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterAds returns the ad entries matching c, preserving relative order.
func FilterAds(entries []AdEntry, c Criteria) []AdEntry {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]AdEntry, 0, len(entries))
	for _, e := range entries {
		if !periodMatches(e.Month, c.Period) {
			continue
		}
		if search != "" && !strings.Contains(e.Date.Format("2006-01-02"), search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func periodMatches(label, period string) bool {
	if period == "" || period == "all" {
		return true
	}
	return strings.HasPrefix(label, period)
}
