package model

// BuiltinDocumentTypes is the catalog offered on the first wizard
// step. Matches the backend's seeded document types.
func BuiltinDocumentTypes() []DocumentType {
	return []DocumentType{
		{ID: "bank_statement", Name: "bank_statement", DisplayName: "Bank Statement",
			Description: "Account statements with transaction tables"},
		{ID: "invoice", Name: "invoice", DisplayName: "Invoice",
			Description: "Invoices with line items, totals, and tax fields"},
		{ID: "expense_voucher", Name: "expense_voucher", DisplayName: "Expense Voucher",
			Description: "Expense claims and reimbursement vouchers"},
		{ID: "form_16", Name: "form_16", DisplayName: "Form 16",
			Description: "Salary TDS certificate"},
		{ID: "form_16a", Name: "form_16a", DisplayName: "Form 16A",
			Description: "Non-salary TDS certificate"},
		{ID: "form_26as", Name: "form_26as", DisplayName: "Form 26AS",
			Description: "Annual tax credit statement"},
		{ID: "ais_tis", Name: "ais_tis", DisplayName: "AIS/TIS",
			Description: "Annual information statement"},
		{ID: "balance_sheet", Name: "balance_sheet", DisplayName: "Balance Sheet",
			Description: "Financial position statements"},
		{ID: "profit_loss", Name: "profit_loss", DisplayName: "Profit & Loss",
			Description: "Income statements"},
		{ID: "tds_form", Name: "tds_form", DisplayName: "TDS Form",
			Description: "Tax deducted at source forms"},
		{ID: "gst_form", Name: "gst_form", DisplayName: "GST Form",
			Description: "GST returns and filings"},
		{ID: "custom", Name: "custom", DisplayName: "Custom Document",
			Description: "Define your own document type and fields"},
	}
}

// DefaultFields returns the starter field set for a document type.
func DefaultFields(docTypeID string) []FieldDef {
	switch docTypeID {
	case "invoice":
		return []FieldDef{
			{ID: "field-1", Name: "Invoice Number", Type: "text", Required: true},
			{ID: "field-2", Name: "Invoice Date", Type: "date", Required: true},
			{ID: "field-3", Name: "Vendor Name", Type: "text", Required: true},
			{ID: "field-4", Name: "Total Amount", Type: "currency", Required: true},
			{ID: "field-5", Name: "Tax Amount", Type: "currency", Required: false},
			{ID: "field-6", Name: "Line Items", Type: "table", Required: false},
		}
	case "bank_statement":
		return []FieldDef{
			{ID: "field-1", Name: "Account Number", Type: "text", Required: true},
			{ID: "field-2", Name: "Statement Period", Type: "text", Required: true},
			{ID: "field-3", Name: "Opening Balance", Type: "currency", Required: true},
			{ID: "field-4", Name: "Closing Balance", Type: "currency", Required: true},
			{ID: "field-5", Name: "Transactions", Type: "table", Required: false},
		}
	case "expense_voucher":
		return []FieldDef{
			{ID: "field-1", Name: "Voucher Number", Type: "text", Required: true},
			{ID: "field-2", Name: "Date", Type: "date", Required: true},
			{ID: "field-3", Name: "Amount", Type: "currency", Required: true},
			{ID: "field-4", Name: "Category", Type: "text", Required: false},
		}
	default:
		return nil
	}
}

// FieldTypes lists the supported extraction field types.
func FieldTypes() []string {
	return []string{"text", "number", "date", "currency", "table"}
}

// AllowedExtensions lists the accepted document file extensions.
func AllowedExtensions() []string {
	return []string{".pdf", ".jpg", ".jpeg", ".png", ".tiff"}
}
