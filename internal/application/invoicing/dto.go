package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/invoicing"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceItemResponse is one invoice line in API responses
type InvoiceItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	ItemID          *uuid.UUID      `json:"item_id"`
	ItemDescription string          `json:"item_description"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// InvoiceResponse represents an invoice with its lines
type InvoiceResponse struct {
	ID              uuid.UUID             `json:"id"`
	CompanyID       uuid.UUID             `json:"company_id"`
	InvoiceNumber   string                `json:"invoice_number"`
	CustomerName    string                `json:"customer_name"`
	CustomerEmail   *string               `json:"customer_email"`
	CustomerAddress *string               `json:"customer_address"`
	IssueDate       string                `json:"issue_date"`
	DueDate         *string               `json:"due_date"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	Status          string                `json:"status"`
	Notes           *string               `json:"notes"`
	UserID          uuid.UUID             `json:"user_id"`
	Items           []InvoiceItemResponse `json:"items"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice
func ToInvoiceResponse(inv *invoicing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:              it.ID,
			InvoiceID:       inv.ID,
			ItemID:          it.ItemID,
			ItemDescription: it.ItemDescription,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			LineTotal:       it.LineTotal,
		}
	}
	return InvoiceResponse{
		ID:              inv.ID,
		CompanyID:       inv.CompanyID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerName:    inv.CustomerName,
		CustomerEmail:   inv.CustomerEmail,
		CustomerAddress: inv.CustomerAddress,
		IssueDate:       shared.FormatDate(inv.IssueDate),
		DueDate:         shared.FormatOptionalDate(inv.DueDate),
		TotalAmount:     inv.TotalAmount,
		Status:          inv.Status.String(),
		Notes:           inv.Notes,
		UserID:          inv.UserID,
		Items:           items,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}
