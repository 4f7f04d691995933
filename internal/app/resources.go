package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nhle/freightdesk/internal/api"
	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/internal/ui/resource"
)

// Section is one entry of the home menu backed by a resource screen.
type Section struct {
	Slug      string
	Group     string
	AdminOnly bool
	Resource  resource.Resource
}

// Sections lists every managed entity in menu order. Admin-only sections
// are included; callers filter with Visible.
func Sections(c *api.Client, s model.Session) []Section {
	return []Section{
		{Slug: "lorry-receipts", Group: "Shipments", Resource: lorryReceipts(c, s)},
		{Slug: "freight-memos", Group: "Shipments", Resource: freightMemos(c, s)},
		{Slug: "fm-records", Group: "Shipments", Resource: paymentRecords(c, model.EntityFM)},
		{Slug: "pods", Group: "Shipments", Resource: pods(c)},
		{Slug: "bills", Group: "Billing", Resource: bills(c)},
		{Slug: "bill-records", Group: "Billing", Resource: paymentRecords(c, model.EntityBill)},
		{Slug: "credits", Group: "Billing", Resource: credits(c)},
		{Slug: "write-offs", Group: "Billing", Resource: writeOffs(c)},
		{Slug: "expenses", Group: "Branch", Resource: expenses(c, s)},
		{Slug: "clients", Group: "Partners", Resource: clients(c)},
		{Slug: "vendors", Group: "Partners", Resource: vendors(c)},
		{Slug: "vehicles", Group: "Partners", Resource: vehicles(c)},
		{Slug: "branches", Group: "Admin", AdminOnly: true, Resource: branches(c)},
	}
}

// Visible drops the sections the session may not open.
func Visible(all []Section, s model.Session) []Section {
	out := make([]Section, 0, len(all))
	for _, sec := range all {
		if sec.AdminOnly && !s.IsAdmin() {
			continue
		}
		out = append(out, sec)
	}
	return out
}

// branchOf fills the branch on records a branch user creates.
func branchOf(s model.Session, current, entered string) string {
	switch {
	case current != "":
		return current
	case !s.IsAdmin():
		return s.BranchID
	default:
		return strings.TrimSpace(entered)
	}
}

func lorryReceipts(c *api.Client, s model.Session) resource.Spec[model.LorryReceipt] {
	fields := []resource.Field{
		{Key: "lrNumber", Title: "LR number", Required: true, Immutable: true},
		{Key: "date", Title: "Date", Placeholder: "YYYY-MM-DD", Required: true, Validate: validateDate},
		{Key: "consignor", Title: "Consignor", Required: true},
		{Key: "consignee", Title: "Consignee", Required: true},
		{Key: "from", Title: "From", Required: true},
		{Key: "to", Title: "To", Required: true},
		{Key: "vehicleNumber", Title: "Vehicle number"},
		{Key: "packages", Title: "Packages", Validate: validateCount},
		{Key: "weight", Title: "Weight (kg)", Validate: validateAmount},
		{Key: "freight", Title: "Freight", Validate: validateAmount},
		{Key: "status", Title: "Status", Options: []string{"booked", "in transit", "delivered", "billed"}},
	}
	if s.IsAdmin() {
		fields = append(fields, resource.Field{Key: "branchId", Title: "Branch ID"})
	}

	return resource.Spec[model.LorryReceipt]{
		Singular:   "LR",
		PluralName: "Lorry Receipts",
		EntityType: model.EntityLR,
		TableCols: []resource.Column{
			{Title: "LR No", Width: 10}, {Title: "Date", Width: 10}, {Title: "Consignor", Width: 18},
			{Title: "From", Width: 12}, {Title: "To", Width: 12}, {Title: "Freight", Width: 11}, {Title: "Status", Width: 10},
		},
		FormFields: fields,
		IDOf:       func(v model.LorryReceipt) string { return v.ID },
		KeyOf:      func(v model.LorryReceipt) string { return v.LRNumber },
		CellsOf: func(v model.LorryReceipt) []string {
			return []string{v.LRNumber, v.Date, v.Consignor, v.From, v.To, money(v.Freight), v.Status}
		},
		ValuesOf: func(v model.LorryReceipt) map[string]string {
			return map[string]string{
				"lrNumber": v.LRNumber, "date": v.Date, "consignor": v.Consignor, "consignee": v.Consignee,
				"from": v.From, "to": v.To, "vehicleNumber": v.VehicleNumber,
				"packages": strconv.Itoa(v.Packages), "weight": amountOrEmpty(v.Weight),
				"freight": amountOrEmpty(v.Freight), "status": v.Status, "branchId": v.BranchID,
			}
		},
		Decode: func(in map[string]string, v model.LorryReceipt) (model.LorryReceipt, error) {
			var err error
			if v.LRNumber == "" {
				v.LRNumber = in["lrNumber"]
			}
			v.Date, v.Consignor, v.Consignee = in["date"], in["consignor"], in["consignee"]
			v.From, v.To, v.VehicleNumber = in["from"], in["to"], strings.ToUpper(in["vehicleNumber"])
			v.Status = in["status"]
			v.BranchID = branchOf(s, v.BranchID, in["branchId"])
			if v.Packages, err = parseCount("packages", in["packages"]); err != nil {
				return v, err
			}
			if v.Weight, err = parseAmount("weight", in["weight"]); err != nil {
				return v, err
			}
			if v.Freight, err = parseAmount("freight", in["freight"]); err != nil {
				return v, err
			}
			return v, nil
		},
		ListFn:   c.LorryReceipts,
		CreateFn: c.CreateLorryReceipt,
		UpdateFn: c.UpdateLorryReceipt,
		DeleteFn: c.DeleteLorryReceipt,
		CheckFn:  c.CheckLRNumber,
	}
}

func freightMemos(c *api.Client, s model.Session) resource.Spec[model.FreightMemo] {
	fields := []resource.Field{
		{Key: "fmNumber", Title: "FM number", Required: true, Immutable: true},
		{Key: "date", Title: "Date", Placeholder: "YYYY-MM-DD", Required: true, Validate: validateDate},
		{Key: "vendorName", Title: "Vendor", Required: true},
		{Key: "vehicleNumber", Title: "Vehicle number", Required: true},
		{Key: "from", Title: "From", Required: true},
		{Key: "to", Title: "To", Required: true},
		{Key: "lrNumbers", Title: "LR numbers", Placeholder: "LR-1, LR-2"},
		{Key: "hireAmount", Title: "Hire amount", Required: true, Validate: validateAmount},
		{Key: "advance", Title: "Advance", Validate: validateAmount},
		{Key: "tdsPercent", Title: "TDS %", Validate: validatePercent},
	}
	if s.IsAdmin() {
		fields = append(fields, resource.Field{Key: "branchId", Title: "Branch ID"})
	}

	return resource.Spec[model.FreightMemo]{
		Singular:   "FM",
		PluralName: "Freight Memos",
		EntityType: model.EntityFM,
		TableCols: []resource.Column{
			{Title: "FM No", Width: 10}, {Title: "Date", Width: 10}, {Title: "Vendor", Width: 18},
			{Title: "Vehicle", Width: 12}, {Title: "Hire", Width: 11}, {Title: "Advance", Width: 11}, {Title: "Balance", Width: 11},
		},
		FormFields: fields,
		IDOf:       func(v model.FreightMemo) string { return v.ID },
		KeyOf:      func(v model.FreightMemo) string { return v.FMNumber },
		CellsOf: func(v model.FreightMemo) []string {
			return []string{v.FMNumber, v.Date, v.VendorName, v.VehicleNumber, money(v.HireAmount), money(v.Advance), money(v.Balance)}
		},
		ValuesOf: func(v model.FreightMemo) map[string]string {
			return map[string]string{
				"fmNumber": v.FMNumber, "date": v.Date, "vendorName": v.VendorName,
				"vehicleNumber": v.VehicleNumber, "from": v.From, "to": v.To,
				"lrNumbers": joinList(v.LRNumbers), "hireAmount": amountOrEmpty(v.HireAmount),
				"advance": amountOrEmpty(v.Advance), "tdsPercent": amountOrEmpty(v.TDSPercent),
				"branchId": v.BranchID,
			}
		},
		Decode: func(in map[string]string, v model.FreightMemo) (model.FreightMemo, error) {
			var err error
			if v.FMNumber == "" {
				v.FMNumber = in["fmNumber"]
			}
			v.Date, v.VendorName = in["date"], in["vendorName"]
			v.VehicleNumber = strings.ToUpper(in["vehicleNumber"])
			v.From, v.To = in["from"], in["to"]
			v.LRNumbers = splitList(in["lrNumbers"])
			v.BranchID = branchOf(s, v.BranchID, in["branchId"])
			if v.HireAmount, err = parseAmount("hire amount", in["hireAmount"]); err != nil {
				return v, err
			}
			if v.Advance, err = parseAmount("advance", in["advance"]); err != nil {
				return v, err
			}
			if v.TDSPercent, err = parseAmount("TDS", in["tdsPercent"]); err != nil {
				return v, err
			}
			if v.Advance.GreaterThan(v.HireAmount) {
				return v, fmt.Errorf("advance %s exceeds hire %s", money(v.Advance), money(v.HireAmount))
			}
			return v, nil
		},
		ListFn:   c.FreightMemos,
		CreateFn: c.CreateFreightMemo,
		UpdateFn: c.UpdateFreightMemo,
		DeleteFn: c.DeleteFreightMemo,
		CheckFn:  c.CheckFMNumber,
	}
}

// paymentRecords serves both bill receipts and FM payments; parent picks
// which.
func paymentRecords(c *api.Client, parent model.EntityType) resource.Spec[model.PaymentRecord] {
	spec := resource.Spec[model.PaymentRecord]{
		Singular:   "Bill record",
		PluralName: "Bill Records",
		EntityType: model.EntityBillRecord,
		TableCols: []resource.Column{
			{Title: "Bill No", Width: 10}, {Title: "Date", Width: 10}, {Title: "Amount", Width: 11},
			{Title: "TDS", Width: 9}, {Title: "Mode", Width: 8}, {Title: "Reference", Width: 16},
		},
		FormFields: []resource.Field{
			{Key: "parentNumber", Title: "Bill number", Required: true},
			{Key: "date", Title: "Date", Placeholder: "YYYY-MM-DD", Required: true, Validate: validateDate},
			{Key: "amount", Title: "Amount", Required: true, Validate: validateAmount},
			{Key: "tds", Title: "TDS deducted", Validate: validateAmount},
			{Key: "mode", Title: "Mode", Options: []string{"NEFT", "RTGS", "cheque", "cash", "UPI"}},
			{Key: "reference", Title: "Reference"},
		},
		IDOf:  func(v model.PaymentRecord) string { return v.ID },
		KeyOf: func(v model.PaymentRecord) string { return v.ParentNumber + "/" + v.Date },
		// Several payments can share a bill and a day, so requests name the
		// record itself.
		RequestKeyOf: func(v model.PaymentRecord) string { return v.ID },
		CellsOf: func(v model.PaymentRecord) []string {
			return []string{v.ParentNumber, v.Date, money(v.Amount), money(v.TDS), v.Mode, v.Reference}
		},
		ValuesOf: func(v model.PaymentRecord) map[string]string {
			return map[string]string{
				"parentNumber": v.ParentNumber, "date": v.Date, "amount": amountOrEmpty(v.Amount),
				"tds": amountOrEmpty(v.TDS), "mode": v.Mode, "reference": v.Reference,
			}
		},
		Decode: func(in map[string]string, v model.PaymentRecord) (model.PaymentRecord, error) {
			var err error
			v.ParentNumber, v.Date, v.Mode, v.Reference = in["parentNumber"], in["date"], in["mode"], in["reference"]
			if v.Amount, err = parseAmount("amount", in["amount"]); err != nil {
				return v, err
			}
			if v.TDS, err = parseAmount("TDS", in["tds"]); err != nil {
				return v, err
			}
			return v, nil
		},
		ListFn:   c.BillRecords,
		CreateFn: c.CreateBillRecord,
		UpdateFn: c.UpdateBillRecord,
		DeleteFn: c.DeleteBillRecord,
	}

	if parent == model.EntityFM {
		spec.Singular, spec.PluralName, spec.EntityType = "FM record", "FM Records", model.EntityFMRecord
		spec.TableCols[0].Title = "FM No"
		spec.FormFields[0].Title = "FM number"
		spec.ListFn = c.FMRecords
		spec.CreateFn = c.CreateFMRecord
		spec.UpdateFn = c.UpdateFMRecord
		spec.DeleteFn = c.DeleteFMRecord
	}
	return spec
}

func pods(c *api.Client) resource.Spec[model.POD] {
	return resource.Spec[model.POD]{
		Singular:   "POD",
		PluralName: "PODs",
		EntityType: model.EntityPOD,
		TableCols: []resource.Column{
			{Title: "LR No", Width: 10}, {Title: "Received", Width: 10}, {Title: "By", Width: 18}, {Title: "Remarks", Width: 30},
		},
		FormFields: []resource.Field{
			{Key: "lrNumber", Title: "LR number", Required: true, Immutable: true},
			{Key: "receivedOn", Title: "Received on", Placeholder: "YYYY-MM-DD", Required: true, Validate: validateDate},
			{Key: "receivedBy", Title: "Received by"},
			{Key: "remarks", Title: "Remarks"},
		},
		IDOf:    func(v model.POD) string { return v.ID },
		KeyOf:   func(v model.POD) string { return v.LRNumber },
		CellsOf: func(v model.POD) []string { return []string{v.LRNumber, v.ReceivedOn, v.ReceivedBy, v.Remarks} },
		ValuesOf: func(v model.POD) map[string]string {
			return map[string]string{"lrNumber": v.LRNumber, "receivedOn": v.ReceivedOn, "receivedBy": v.ReceivedBy, "remarks": v.Remarks}
		},
		Decode: func(in map[string]string, v model.POD) (model.POD, error) {
			if v.LRNumber == "" {
				v.LRNumber = in["lrNumber"]
			}
			v.ReceivedOn, v.ReceivedBy, v.Remarks = in["receivedOn"], in["receivedBy"], in["remarks"]
			return v, nil
		},
		ListFn:   c.PODs,
		CreateFn: c.CreatePOD,
		UpdateFn: c.UpdatePOD,
		DeleteFn: c.DeletePOD,
	}
}

func bills(c *api.Client) resource.Spec[model.Bill] {
	return resource.Spec[model.Bill]{
		Singular:   "Bill",
		PluralName: "Bills",
		EntityType: model.EntityBill,
		TableCols: []resource.Column{
			{Title: "Bill No", Width: 10}, {Title: "Date", Width: 10}, {Title: "Client", Width: 20},
			{Title: "Amount", Width: 11}, {Title: "Received", Width: 11}, {Title: "Pending", Width: 11},
		},
		FormFields: []resource.Field{
			{Key: "billNumber", Title: "Bill number", Required: true, Immutable: true},
			{Key: "date", Title: "Date", Placeholder: "YYYY-MM-DD", Required: true, Validate: validateDate},
			{Key: "clientName", Title: "Client", Required: true},
			{Key: "lrNumbers", Title: "LR numbers", Placeholder: "LR-1, LR-2", Required: true},
			{Key: "amount", Title: "Amount", Required: true, Validate: validateAmount},
		},
		IDOf:  func(v model.Bill) string { return v.ID },
		KeyOf: func(v model.Bill) string { return v.BillNumber },
		CellsOf: func(v model.Bill) []string {
			return []string{v.BillNumber, v.Date, v.ClientName, money(v.Amount), money(v.Received), money(v.Pending)}
		},
		ValuesOf: func(v model.Bill) map[string]string {
			return map[string]string{
				"billNumber": v.BillNumber, "date": v.Date, "clientName": v.ClientName,
				"lrNumbers": joinList(v.LRNumbers), "amount": amountOrEmpty(v.Amount),
			}
		},
		Decode: func(in map[string]string, v model.Bill) (model.Bill, error) {
			var err error
			if v.BillNumber == "" {
				v.BillNumber = in["billNumber"]
			}
			v.Date, v.ClientName = in["date"], in["clientName"]
			v.LRNumbers = splitList(in["lrNumbers"])
			if v.Amount, err = parseAmount("amount", in["amount"]); err != nil {
				return v, err
			}
			return v, nil
		},
		ListFn:   c.Bills,
		CreateFn: c.CreateBill,
		UpdateFn: c.UpdateBill,
		DeleteFn: c.DeleteBill,
	}
}

func credits(c *api.Client) resource.Spec[model.Credit] {
	return resource.Spec[model.Credit]{
		Singular:   "Credit",
		PluralName: "Credits",
		EntityType: model.EntityCredit,
		TableCols: []resource.Column{
			{Title: "Client", Width: 20}, {Title: "Date", Width: 10}, {Title: "Amount", Width: 11}, {Title: "Remarks", Width: 30},
		},
		FormFields: []resource.Field{
			{Key: "clientName", Title: "Client", Required: true},
			{Key: "date", Title: "Date", Placeholder: "YYYY-MM-DD", Required: true, Validate: validateDate},
			{Key: "amount", Title: "Amount", Required: true, Validate: validateAmount},
			{Key: "remarks", Title: "Remarks"},
		},
		IDOf:    func(v model.Credit) string { return v.ID },
		CellsOf: func(v model.Credit) []string { return []string{v.ClientName, v.Date, money(v.Amount), v.Remarks} },
		ValuesOf: func(v model.Credit) map[string]string {
			return map[string]string{"clientName": v.ClientName, "date": v.Date, "amount": amountOrEmpty(v.Amount), "remarks": v.Remarks}
		},
		Decode: func(in map[string]string, v model.Credit) (model.Credit, error) {
			var err error
			v.ClientName, v.Date, v.Remarks = in["clientName"], in["date"], in["remarks"]
			v.Amount, err = parseAmount("amount", in["amount"])
			return v, err
		},
		ListFn:   c.Credits,
		CreateFn: c.CreateCredit,
		UpdateFn: c.UpdateCredit,
		DeleteFn: c.DeleteCredit,
	}
}

func writeOffs(c *api.Client) resource.Spec[model.WriteOff] {
	return resource.Spec[model.WriteOff]{
		Singular:   "Write-off",
		PluralName: "Write-offs",
		TableCols: []resource.Column{
			{Title: "Bill No", Width: 10}, {Title: "Date", Width: 10}, {Title: "Amount", Width: 11}, {Title: "Reason", Width: 30},
		},
		FormFields: []resource.Field{
			{Key: "billNumber", Title: "Bill number", Required: true},
			{Key: "date", Title: "Date", Placeholder: "YYYY-MM-DD", Required: true, Validate: validateDate},
			{Key: "amount", Title: "Amount", Required: true, Validate: validateAmount},
			{Key: "reason", Title: "Reason", Required: true},
		},
		IDOf:    func(v model.WriteOff) string { return v.ID },
		KeyOf:   func(v model.WriteOff) string { return v.BillNumber },
		CellsOf: func(v model.WriteOff) []string { return []string{v.BillNumber, v.Date, money(v.Amount), v.Reason} },
		ValuesOf: func(v model.WriteOff) map[string]string {
			return map[string]string{"billNumber": v.BillNumber, "date": v.Date, "amount": amountOrEmpty(v.Amount), "reason": v.Reason}
		},
		Decode: func(in map[string]string, v model.WriteOff) (model.WriteOff, error) {
			var err error
			v.BillNumber, v.Date, v.Reason = in["billNumber"], in["date"], in["reason"]
			v.Amount, err = parseAmount("amount", in["amount"])
			return v, err
		},
		ListFn:   c.WriteOffs,
		CreateFn: c.CreateWriteOff,
		UpdateFn: c.UpdateWriteOff,
		DeleteFn: c.DeleteWriteOff,
	}
}

func expenses(c *api.Client, s model.Session) resource.Spec[model.Expense] {
	fields := []resource.Field{
		{Key: "date", Title: "Date", Placeholder: "YYYY-MM-DD", Required: true, Validate: validateDate},
		{Key: "category", Title: "Category", Options: []string{"fuel", "toll", "loading", "office", "salary", "other"}},
		{Key: "amount", Title: "Amount", Required: true, Validate: validateAmount},
		{Key: "remarks", Title: "Remarks"},
	}
	if s.IsAdmin() {
		fields = append(fields, resource.Field{Key: "branchId", Title: "Branch ID", Required: true})
	}

	return resource.Spec[model.Expense]{
		Singular:   "Expense",
		PluralName: "Expenses",
		EntityType: model.EntityExpense,
		TableCols: []resource.Column{
			{Title: "Date", Width: 10}, {Title: "Branch", Width: 10}, {Title: "Category", Width: 10},
			{Title: "Amount", Width: 11}, {Title: "Remarks", Width: 30},
		},
		FormFields: fields,
		IDOf:       func(v model.Expense) string { return v.ID },
		CellsOf: func(v model.Expense) []string {
			return []string{v.Date, v.BranchID, v.Category, money(v.Amount), v.Remarks}
		},
		ValuesOf: func(v model.Expense) map[string]string {
			return map[string]string{
				"date": v.Date, "category": v.Category, "amount": amountOrEmpty(v.Amount),
				"remarks": v.Remarks, "branchId": v.BranchID,
			}
		},
		Decode: func(in map[string]string, v model.Expense) (model.Expense, error) {
			var err error
			v.Date, v.Category, v.Remarks = in["date"], in["category"], in["remarks"]
			v.BranchID = branchOf(s, v.BranchID, in["branchId"])
			v.Amount, err = parseAmount("amount", in["amount"])
			return v, err
		},
		ListFn:   c.Expenses,
		CreateFn: c.CreateExpense,
		UpdateFn: c.UpdateExpense,
		DeleteFn: c.DeleteExpense,
	}
}

func clients(c *api.Client) resource.Spec[model.Client] {
	return resource.Spec[model.Client]{
		Singular:   "Client",
		PluralName: "Clients",
		TableCols: []resource.Column{
			{Title: "Name", Width: 24}, {Title: "GST", Width: 16}, {Title: "Phone", Width: 12}, {Title: "Email", Width: 24},
		},
		FormFields: []resource.Field{
			{Key: "name", Title: "Name", Required: true},
			{Key: "address", Title: "Address"},
			{Key: "gstNumber", Title: "GST number"},
			{Key: "phone", Title: "Phone"},
			{Key: "email", Title: "Email"},
		},
		IDOf:    func(v model.Client) string { return v.ID },
		KeyOf:   func(v model.Client) string { return v.Name },
		CellsOf: func(v model.Client) []string { return []string{v.Name, v.GSTNumber, v.Phone, v.Email} },
		ValuesOf: func(v model.Client) map[string]string {
			return map[string]string{"name": v.Name, "address": v.Address, "gstNumber": v.GSTNumber, "phone": v.Phone, "email": v.Email}
		},
		Decode: func(in map[string]string, v model.Client) (model.Client, error) {
			v.Name, v.Address, v.Phone, v.Email = in["name"], in["address"], in["phone"], in["email"]
			v.GSTNumber = strings.ToUpper(in["gstNumber"])
			return v, nil
		},
		ListFn:   c.Clients,
		CreateFn: c.CreateClient,
		UpdateFn: c.UpdateClient,
		DeleteFn: c.DeleteClient,
	}
}

func vendors(c *api.Client) resource.Spec[model.Vendor] {
	return resource.Spec[model.Vendor]{
		Singular:   "Vendor",
		PluralName: "Vendors",
		TableCols: []resource.Column{
			{Title: "Name", Width: 24}, {Title: "PAN", Width: 12}, {Title: "Phone", Width: 12}, {Title: "TDS %", Width: 6},
		},
		FormFields: []resource.Field{
			{Key: "name", Title: "Name", Required: true},
			{Key: "address", Title: "Address"},
			{Key: "pan", Title: "PAN"},
			{Key: "phone", Title: "Phone"},
			{Key: "tdsPercent", Title: "TDS %", Validate: validatePercent},
		},
		IDOf:  func(v model.Vendor) string { return v.ID },
		KeyOf: func(v model.Vendor) string { return v.Name },
		CellsOf: func(v model.Vendor) []string {
			return []string{v.Name, v.PAN, v.Phone, v.TDSPercent.String()}
		},
		ValuesOf: func(v model.Vendor) map[string]string {
			return map[string]string{"name": v.Name, "address": v.Address, "pan": v.PAN, "phone": v.Phone, "tdsPercent": amountOrEmpty(v.TDSPercent)}
		},
		Decode: func(in map[string]string, v model.Vendor) (model.Vendor, error) {
			var err error
			v.Name, v.Address, v.Phone = in["name"], in["address"], in["phone"]
			v.PAN = strings.ToUpper(in["pan"])
			v.TDSPercent, err = parseAmount("TDS", in["tdsPercent"])
			return v, err
		},
		ListFn:   c.Vendors,
		CreateFn: c.CreateVendor,
		UpdateFn: c.UpdateVendor,
		DeleteFn: c.DeleteVendor,
	}
}

func vehicles(c *api.Client) resource.Spec[model.Vehicle] {
	return resource.Spec[model.Vehicle]{
		Singular:   "Vehicle",
		PluralName: "Vehicles",
		TableCols: []resource.Column{
			{Title: "Number", Width: 12}, {Title: "Type", Width: 12}, {Title: "Owner", Width: 20}, {Title: "Vendor", Width: 20},
		},
		FormFields: []resource.Field{
			{Key: "vehicleNumber", Title: "Vehicle number", Required: true, Immutable: true},
			{Key: "vehicleType", Title: "Type", Options: []string{"open", "container", "trailer", "tanker", "reefer"}},
			{Key: "ownerName", Title: "Owner name"},
			{Key: "ownerPhone", Title: "Owner phone"},
			{Key: "vendorName", Title: "Vendor"},
		},
		IDOf:  func(v model.Vehicle) string { return v.ID },
		KeyOf: func(v model.Vehicle) string { return v.Number },
		CellsOf: func(v model.Vehicle) []string {
			return []string{v.Number, v.Type, v.OwnerName, v.VendorName}
		},
		ValuesOf: func(v model.Vehicle) map[string]string {
			return map[string]string{"vehicleNumber": v.Number, "vehicleType": v.Type, "ownerName": v.OwnerName, "ownerPhone": v.OwnerPhone, "vendorName": v.VendorName}
		},
		Decode: func(in map[string]string, v model.Vehicle) (model.Vehicle, error) {
			if v.Number == "" {
				v.Number = strings.ToUpper(strings.ReplaceAll(in["vehicleNumber"], " ", ""))
			}
			v.Type, v.OwnerName, v.OwnerPhone, v.VendorName = in["vehicleType"], in["ownerName"], in["ownerPhone"], in["vendorName"]
			return v, nil
		},
		ListFn:   c.Vehicles,
		CreateFn: c.CreateVehicle,
		UpdateFn: c.UpdateVehicle,
		DeleteFn: c.DeleteVehicle,
	}
}

func branches(c *api.Client) resource.Spec[model.Branch] {
	return resource.Spec[model.Branch]{
		Singular:   "Branch",
		PluralName: "Branches",
		TableCols:  []resource.Column{{Title: "ID", Width: 12}, {Title: "Name", Width: 24}, {Title: "City", Width: 16}},
		FormFields: []resource.Field{
			{Key: "branchName", Title: "Branch name", Required: true},
			{Key: "city", Title: "City"},
		},
		IDOf:    func(v model.Branch) string { return v.ID },
		KeyOf:   func(v model.Branch) string { return v.BranchName },
		CellsOf: func(v model.Branch) []string { return []string{v.ID, v.BranchName, v.City} },
		ValuesOf: func(v model.Branch) map[string]string {
			return map[string]string{"branchName": v.BranchName, "city": v.City}
		},
		Decode: func(in map[string]string, v model.Branch) (model.Branch, error) {
			v.BranchName, v.City = in["branchName"], in["city"]
			return v, nil
		},
		ListFn:   c.Branches,
		CreateFn: c.CreateBranch,
		UpdateFn: c.UpdateBranch,
		DeleteFn: c.DeleteBranch,
	}
}
