package model

import "github.com/shopspring/decimal"

// Client is a consignor/consignee company billed for shipments.
type Client struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTNumber string `json:"gstNumber"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// Vendor is a truck owner or fleet operator that FMs are issued to.
type Vendor struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Address    string          `json:"address"`
	PAN        string          `json:"pan"`
	Phone      string          `json:"phone"`
	TDSPercent decimal.Decimal `json:"tdsPercent"`
}

// Vehicle is a truck registered against a vendor.
type Vehicle struct {
	ID         string `json:"id"`
	Number     string `json:"vehicleNumber"`
	Type       string `json:"vehicleType"`
	OwnerName  string `json:"ownerName"`
	OwnerPhone string `json:"ownerPhone"`
	VendorName string `json:"vendorName"`
}

// Branch is an office of the brokerage.
type Branch struct {
	ID         string `json:"id"`
	BranchName string `json:"branchName"`
	City       string `json:"city"`
}
