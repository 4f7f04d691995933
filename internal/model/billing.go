package model

import "github.com/shopspring/decimal"

// Bill is an invoice raised to a client over one or more LRs.
// Received and Pending are computed by the backend.
type Bill struct {
	ID         string          `json:"id"`
	BillNumber string          `json:"billNumber"`
	Date       string          `json:"date"`
	ClientName string          `json:"clientName"`
	LRNumbers  []string        `json:"lrNumbers"`
	Amount     decimal.Decimal `json:"amount"`
	Received   decimal.Decimal `json:"received"`
	Pending    decimal.Decimal `json:"pending"`
}

// PaymentRecord is a payment received against a bill or paid against an FM.
// ParentNumber holds the bill or FM number accordingly.
type PaymentRecord struct {
	ID           string          `json:"id"`
	ParentNumber string          `json:"parentNumber"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	TDS          decimal.Decimal `json:"tds"`
	Mode         string          `json:"mode"`
	Reference    string          `json:"reference"`
}

// Credit is an on-account amount received from a client.
type Credit struct {
	ID         string          `json:"id"`
	ClientName string          `json:"clientName"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Remarks    string          `json:"remarks"`
}

// Expense is a branch expenditure.
type Expense struct {
	ID       string          `json:"id"`
	BranchID string          `json:"branchId"`
	Date     string          `json:"date"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Remarks  string          `json:"remarks"`
}

// WriteOff cancels an outstanding pending amount on a bill.
type WriteOff struct {
	ID         string          `json:"id"`
	BillNumber string          `json:"billNumber"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
}
