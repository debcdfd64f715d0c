package summary

import "github.com/shopspring/decimal"

// Summary is the dashboard read model: ledger totals plus per-domain
// aggregates, recomputed on every call.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetBalance    decimal.Decimal

	CustomerTasks    TaskSummary
	CustomerQuotes   QuoteSummary
	CustomerPayments PaymentSummary
}

type TaskSummary struct {
	Total     decimal.Decimal
	Pending   int
	Completed int
}

type QuoteSummary struct {
	PendingTotal  decimal.Decimal
	ApprovedTotal decimal.Decimal
	PendingCount  int
	ApprovedCount int
}

type PaymentSummary struct {
	Total     decimal.Decimal
	ThisMonth decimal.Decimal
}
