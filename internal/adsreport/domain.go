// Package adsreport serves the daily advertising performance ledger: stored
// inputs, the derived economics per row, monthly aggregates and exports.
package adsreport

import (
	"time"

	"github.com/studio-kirana/kirana-erp/internal/ledger"
)

// ReportRequest is the JSON payload for creating or replacing a daily
// report. Only the six input fields are accepted; everything derived is
// computed server-side and returned, never trusted from the client.
type ReportRequest struct {
	ReportDate    string  `json:"report_date"`
	Revenue       float64 `json:"revenue"`
	FeePayment    float64 `json:"fee_payment"`
	AdsSpend      float64 `json:"ads_spend"`
	Leads         int64   `json:"leads"`
	TotalPurchase int64   `json:"total_purchase"`
}

// Input parses the request into ledger input. An unparseable date becomes
// the zero time, which ComputeAd rejects with a report_date field error.
func (r ReportRequest) Input() ledger.AdInput {
	date, err := time.Parse("2006-01-02", r.ReportDate)
	if err != nil {
		date = time.Time{}
	}
	return ledger.AdInput{
		Date:           date,
		Revenue:        r.Revenue,
		FeePayment:     r.FeePayment,
		AdsSpend:       r.AdsSpend,
		Leads:          r.Leads,
		TotalPurchases: r.TotalPurchase,
	}
}

// ReportResponse is the JSON projection of one daily report, inputs and
// derived figures together. The four ratios carry their validity flag so
// the client can render an em-dash instead of a spurious zero.
type ReportResponse struct {
	ID              string       `json:"id"`
	ReportDate      string       `json:"report_date"`
	Revenue         float64      `json:"revenue"`
	FeePayment      float64      `json:"fee_payment"`
	NetRevenue      float64      `json:"net_revenue"`
	AdsSpend        float64      `json:"ads_spend"`
	TaxEstimate     float64      `json:"tax_estimate"`
	ProfitLoss      *float64     `json:"profit_loss"`
	Leads           int64        `json:"leads"`
	TotalPurchase   int64        `json:"total_purchase"`
	ROAS            ledger.Ratio `json:"roas"`
	ConversionRate  ledger.Ratio `json:"conv_percent"`
	CostPerLead     ledger.Ratio `json:"cost_per_lead"`
	CostPerPurchase ledger.Ratio `json:"cost_per_purchase"`
	Week            int          `json:"week"`
	Month           string       `json:"month"`
}

func toResponse(e ledger.AdEntry) ReportResponse {
	return ReportResponse{
		ID:              e.ID,
		ReportDate:      e.Date.Format("2006-01-02"),
		Revenue:         e.Revenue,
		FeePayment:      e.FeePayment,
		NetRevenue:      e.NetRevenue,
		AdsSpend:        e.AdsSpend,
		TaxEstimate:     e.TaxEstimate,
		ProfitLoss:      e.ProfitLoss,
		Leads:           e.Leads,
		TotalPurchase:   e.TotalPurchases,
		ROAS:            e.ROAS(),
		ConversionRate:  e.ConversionRate(),
		CostPerLead:     e.CostPerLead(),
		CostPerPurchase: e.CostPerPurchase(),
		Week:            e.Week,
		Month:           e.Month,
	}
}

// ListView is the aggregate the dashboard renders: filtered rows, the
// summary over exactly those rows, and the selectable month options.
type ListView struct {
	Reports []ReportResponse  `json:"reports"`
	Summary ledger.AdsSummary `json:"summary"`
	Months  []string          `json:"months"`
}
