package domain

import "github.com/shopspring/decimal"

// CancellationReport groups the installments due in one calendar period
// (YYYY-MM) into paid and not-paid partitions with totals. It is a derived
// view, never stored.
type CancellationReport struct {
	Period       string          `json:"period"`
	Paid         []*Installment  `json:"paid"`
	NotPaid      []*Installment  `json:"not_paid"`
	PaidTotal    decimal.Decimal `json:"paid_total"`
	NotPaidTotal decimal.Decimal `json:"not_paid_total"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}
