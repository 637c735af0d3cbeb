package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "Draft"
	InvoiceStatusSent      InvoiceStatus = "Sent"
	InvoiceStatusPaid      InvoiceStatus = "Paid"
	InvoiceStatusOverdue   InvoiceStatus = "Overdue"
	InvoiceStatusCancelled InvoiceStatus = "Cancelled"
)

var allStatuses = []InvoiceStatus{
	InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled,
}

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s InvoiceStatus) String() string {
	return string(s)
}

// ParseInvoiceStatus matches s case-insensitively against the known statuses
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	for _, v := range allStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", shared.NewDomainError("INVALID_STATUS", "Invalid invoice status: "+s+" (valid: Draft, Sent, Paid, Overdue, Cancelled)")
}

// Invoice is a bill issued by a company. TotalAmount always equals the sum of its line totals.
type Invoice struct {
	shared.CompanyEntity
	InvoiceNumber   string
	CustomerName    string
	CustomerEmail   *string
	CustomerAddress *string
	IssueDate       time.Time
	DueDate         *time.Time
	TotalAmount     decimal.Decimal
	Status          InvoiceStatus
	Notes           *string
	UserID          uuid.UUID
	Items           []InvoiceItem
}

// InvoiceItem is one line of an invoice
type InvoiceItem struct {
	ID              uuid.UUID
	InvoiceID       uuid.UUID
	Position        int
	ItemID          *uuid.UUID
	ItemDescription string
	Quantity        int64
	UnitPrice       decimal.Decimal
	LineTotal       decimal.Decimal
}

// Column widths of the invoice tables
const (
	MaxInvoiceNumberLen   = 50
	MaxCustomerNameLen    = 150
	MaxItemDescriptionLen = 255
)

// LineInput is a requested invoice line before validation
type LineInput struct {
	ItemID          *uuid.UUID
	ItemDescription string
	Quantity        int64
	UnitPrice       decimal.Decimal
}

// InvoiceInput carries the fields used to create an invoice
type InvoiceInput struct {
	InvoiceNumber   string
	CustomerName    string
	CustomerEmail   *string
	CustomerAddress *string
	IssueDate       *time.Time
	DueDate         *time.Time
	Status          *InvoiceStatus
	Notes           *string
	Items           []LineInput
}

// ValidateLines checks every line and fails on the first invalid one, before anything is built.
func ValidateLines(lines []LineInput) error {
	if len(lines) == 0 {
		return shared.NewValidationError("at least one item is required")
	}
	total := decimal.Zero
	for i, l := range lines {
		if _, err := shared.RequireText(fmt.Sprintf("items[%d]: item_description", i), l.ItemDescription, MaxItemDescriptionLen); err != nil {
			return err
		}
		if l.Quantity <= 0 {
			return shared.NewValidationError(fmt.Sprintf("items[%d]: quantity must be positive", i))
		}
		if l.UnitPrice.IsNegative() {
			return shared.NewValidationError(fmt.Sprintf("items[%d]: unit_price cannot be negative", i))
		}
		if err := shared.CheckMoney(fmt.Sprintf("items[%d]: unit_price", i), l.UnitPrice); err != nil {
			return err
		}
		total = total.Add(lineTotal(l.Quantity, l.UnitPrice))
	}
	return shared.CheckMoney("total_amount", total)
}

// NewInvoice creates an invoice with its lines for companyID, issued by userID.
// The invoice number must already be resolved.
func NewInvoice(companyID, userID uuid.UUID, in InvoiceInput) (*Invoice, error) {
	customer, err := shared.RequireText("customer_name", in.CustomerName, MaxCustomerNameLen)
	if err != nil {
		return nil, err
	}
	number, err := shared.RequireText("invoice_number", in.InvoiceNumber, MaxInvoiceNumberLen)
	if err != nil {
		return nil, err
	}
	email, err := normalizeCustomerEmail(in.CustomerEmail)
	if err != nil {
		return nil, err
	}
	if err := ValidateLines(in.Items); err != nil {
		return nil, err
	}

	issue := shared.Today()
	if in.IssueDate != nil {
		issue = *in.IssueDate
	}
	status := InvoiceStatusDraft
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Invalid invoice status")
		}
		status = *in.Status
	}
	if err := validateDueDate(issue, in.DueDate); err != nil {
		return nil, err
	}

	inv := &Invoice{
		CompanyEntity:   shared.NewCompanyEntity(companyID),
		InvoiceNumber:   number,
		CustomerName:    customer,
		CustomerEmail:   email,
		CustomerAddress: shared.OptionalString(in.CustomerAddress),
		IssueDate:       issue,
		DueDate:         in.DueDate,
		Status:          status,
		Notes:           shared.OptionalString(in.Notes),
		UserID:          userID,
	}
	inv.setLines(in.Items)
	return inv, nil
}

// InvoiceUpdate holds a partial update. A nil Items leaves lines untouched;
// a non-nil Items replaces them all.
type InvoiceUpdate struct {
	CustomerName    *string
	CustomerEmail   *string
	CustomerAddress *string
	IssueDate       *time.Time
	DueDate         *time.Time
	ClearDueDate    bool
	Status          *InvoiceStatus
	Notes           *string
	Items           []LineInput
	ReplaceItems    bool
}

// Apply validates the whole update and then mutates the invoice.
// The total is recomputed whether or not lines were replaced.
func (inv *Invoice) Apply(u InvoiceUpdate) error {
	customer := inv.CustomerName
	if u.CustomerName != nil {
		v, err := shared.RequireText("customer_name", *u.CustomerName, MaxCustomerNameLen)
		if err != nil {
			return err
		}
		customer = v
	}
	email := inv.CustomerEmail
	if u.CustomerEmail != nil {
		v, err := normalizeCustomerEmail(u.CustomerEmail)
		if err != nil {
			return err
		}
		email = v
	}
	if u.Status != nil && !u.Status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid invoice status")
	}
	issue := inv.IssueDate
	if u.IssueDate != nil {
		issue = *u.IssueDate
	}
	due := inv.DueDate
	if u.ClearDueDate {
		due = nil
	} else if u.DueDate != nil {
		due = u.DueDate
	}
	if err := validateDueDate(issue, due); err != nil {
		return err
	}
	if u.ReplaceItems {
		if err := ValidateLines(u.Items); err != nil {
			return err
		}
	}

	inv.CustomerName = customer
	inv.CustomerEmail = email
	inv.IssueDate = issue
	inv.DueDate = due
	if u.CustomerAddress != nil {
		inv.CustomerAddress = shared.OptionalString(u.CustomerAddress)
	}
	if u.Status != nil {
		inv.Status = *u.Status
	}
	if u.Notes != nil {
		inv.Notes = shared.OptionalString(u.Notes)
	}
	if u.ReplaceItems {
		inv.setLines(u.Items)
	} else {
		inv.RecalculateTotal()
	}
	inv.Touch()
	return nil
}

// RecalculateTotal sums the line totals into TotalAmount
func (inv *Invoice) RecalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].LineTotal = lineTotal(inv.Items[i].Quantity, inv.Items[i].UnitPrice)
		total = total.Add(inv.Items[i].LineTotal)
	}
	inv.TotalAmount = total
	return total
}

// LinkedItemIDs returns the distinct inventory items referenced by the lines
func (inv *Invoice) LinkedItemIDs() []uuid.UUID {
	return linkedItemIDs(lineInputsOf(inv.Items))
}

// LinkedItemIDs returns the distinct inventory items referenced by lines
func LinkedItemIDs(lines []LineInput) []uuid.UUID {
	return linkedItemIDs(lines)
}

// IsCancelled reports whether the invoice was cancelled
func (inv *Invoice) IsCancelled() bool {
	return inv.Status == InvoiceStatusCancelled
}

func (inv *Invoice) setLines(lines []LineInput) {
	inv.Items = make([]InvoiceItem, 0, len(lines))
	for i, l := range lines {
		inv.Items = append(inv.Items, InvoiceItem{
			ID:              uuid.New(),
			InvoiceID:       inv.ID,
			Position:        i + 1,
			ItemID:          l.ItemID,
			ItemDescription: strings.TrimSpace(l.ItemDescription),
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
		})
	}
	inv.RecalculateTotal()
}

func lineTotal(qty int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(qty))
}

func lineInputsOf(items []InvoiceItem) []LineInput {
	out := make([]LineInput, len(items))
	for i, it := range items {
		out[i] = LineInput{ItemID: it.ItemID}
	}
	return out
}

func linkedItemIDs(lines []LineInput) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, l := range lines {
		if l.ItemID == nil {
			continue
		}
		if _, ok := seen[*l.ItemID]; ok {
			continue
		}
		seen[*l.ItemID] = struct{}{}
		ids = append(ids, *l.ItemID)
	}
	return ids
}

func normalizeCustomerEmail(email *string) (*string, error) {
	v := shared.OptionalString(email)
	if v == nil {
		return nil, nil
	}
	if err := identity.ValidateEmail(*v); err != nil {
		return nil, err
	}
	return v, nil
}

func validateDueDate(issue time.Time, due *time.Time) error {
	if due != nil && due.Before(issue) {
		return shared.NewValidationError("due_date cannot be before issue_date")
	}
	return nil
}
