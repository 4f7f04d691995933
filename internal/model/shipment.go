package model

import "github.com/shopspring/decimal"

// LorryReceipt is the shipment document for a single consignment.
type LorryReceipt struct {
	ID            string          `json:"id"`
	LRNumber      string          `json:"lrNumber"`
	Date          string          `json:"date"`
	BranchID      string          `json:"branchId"`
	Consignor     string          `json:"consignor"`
	Consignee     string          `json:"consignee"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	VehicleNumber string          `json:"vehicleNumber"`
	Packages      int             `json:"packages"`
	Weight        decimal.Decimal `json:"weight"`
	Freight       decimal.Decimal `json:"freight"`
	Status        string          `json:"status"`
}

// FreightMemo is the hire document issued to a vendor for a shipment.
type FreightMemo struct {
	ID            string          `json:"id"`
	FMNumber      string          `json:"fmNumber"`
	Date          string          `json:"date"`
	BranchID      string          `json:"branchId"`
	VendorName    string          `json:"vendorName"`
	VehicleNumber string          `json:"vehicleNumber"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	LRNumbers     []string        `json:"lrNumbers"`
	HireAmount    decimal.Decimal `json:"hireAmount"`
	Advance       decimal.Decimal `json:"advance"`
	TDSPercent    decimal.Decimal `json:"tdsPercent"`
	Balance       decimal.Decimal `json:"balance"`
}

// POD is a proof-of-delivery record for an LR.
type POD struct {
	ID         string `json:"id"`
	LRNumber   string `json:"lrNumber"`
	ReceivedOn string `json:"receivedOn"`
	ReceivedBy string `json:"receivedBy"`
	Remarks    string `json:"remarks"`
}
