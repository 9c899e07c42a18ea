package ledger

// FinanceSummary holds the period totals for a filtered finance view.
// EstimatedFinalTax is a flat-rate presumptive simulation on gross income
// and must be labeled as an estimate wherever it is displayed.
type FinanceSummary struct {
	TotalIncome       float64 `json:"total_income"`
	TotalExpense      float64 `json:"total_expense"`
	Balance           float64 `json:"balance"`
	EstimatedFinalTax float64 `json:"estimated_final_tax"`
}

// SummarizeFinance totals the filtered entries. Sums are exact; nothing is
// rounded before presentation. An empty input yields all-zero totals.
func (p TaxPolicy) SummarizeFinance(entries []FinanceEntry) FinanceSummary {
	var s FinanceSummary
	for _, e := range entries {
		switch e.Kind {
		case KindIncome:
			s.TotalIncome += e.Amount
		case KindExpense:
			s.TotalExpense += e.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	s.EstimatedFinalTax = s.TotalIncome * p.FinalRate
	return s
}

// AdsSummary holds the period totals for a filtered ad-performance view.
type AdsSummary struct {
	TotalRevenue          float64 `json:"total_revenue"`
	TotalAdsSpend         float64 `json:"total_ads_spend"`
	TotalProfit           float64 `json:"total_profit"`
	TotalLeads            int64   `json:"total_leads"`
	TotalPurchases        int64   `json:"total_purchases"`
	AverageROAS           Ratio   `json:"average_roas"`
	AverageConversionRate Ratio   `json:"average_conversion_rate"`
}

// SummarizeAds totals the filtered ad entries. Entries missing a stored
// profit figure have it recomputed from their inputs so partially-computed
// records still total correctly.
func (p TaxPolicy) SummarizeAds(entries []AdEntry) AdsSummary {
	var s AdsSummary
	for _, e := range entries {
		s.TotalRevenue += e.Revenue
		s.TotalAdsSpend += e.AdsSpend
		if e.ProfitLoss != nil {
			s.TotalProfit += *e.ProfitLoss
		} else {
			net := e.Revenue - e.FeePayment
			s.TotalProfit += net - e.AdsSpend - net*p.AdRate
		}
		s.TotalLeads += e.Leads
		s.TotalPurchases += e.TotalPurchases
	}
	s.AverageROAS = NewRatio(s.TotalRevenue, s.TotalAdsSpend)
	s.AverageConversionRate = NewRatio(float64(s.TotalPurchases)*100, float64(s.TotalLeads))
	return s
}
