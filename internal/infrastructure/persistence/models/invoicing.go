package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/invoicing"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice header.
type InvoiceModel struct {
	BaseModel
	CompanyID       uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_company_number,priority:1"`
	InvoiceNumber   string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_company_number,priority:2"`
	CustomerName    string             `gorm:"type:varchar(150);not null"`
	CustomerEmail   *string            `gorm:"type:varchar(120)"`
	CustomerAddress *string            `gorm:"type:text"`
	IssueDate       time.Time          `gorm:"type:date;not null;index"`
	DueDate         *time.Time         `gorm:"type:date"`
	TotalAmount     decimal.Decimal    `gorm:"type:numeric(14,2);not null"`
	Status          string             `gorm:"type:varchar(20);not null;default:'Draft'"`
	Notes           *string            `gorm:"type:text"`
	UserID          uuid.UUID          `gorm:"type:uuid;not null"`
	Items           []InvoiceItemModel `gorm:"-"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the header and its loaded items to a domain Invoice.
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	inv := &invoicing.Invoice{
		InvoiceNumber:   m.InvoiceNumber,
		CustomerName:    m.CustomerName,
		CustomerEmail:   m.CustomerEmail,
		CustomerAddress: m.CustomerAddress,
		IssueDate:       utcDate(m.IssueDate),
		DueDate:         utcDatePtr(m.DueDate),
		TotalAmount:     m.TotalAmount,
		Status:          invoicing.InvoiceStatus(m.Status),
		Notes:           m.Notes,
		UserID:          m.UserID,
		Items:           make([]invoicing.InvoiceItem, 0, len(m.Items)),
	}
	inv.BaseEntity = m.BaseModel.toEntity()
	inv.CompanyID = m.CompanyID
	for i := range m.Items {
		inv.Items = append(inv.Items, m.Items[i].ToDomain())
	}
	return inv
}

// InvoiceModelFromDomain creates header and item models from a domain Invoice.
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		BaseModel:       baseFromEntity(inv.BaseEntity),
		CompanyID:       inv.CompanyID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerName:    inv.CustomerName,
		CustomerEmail:   inv.CustomerEmail,
		CustomerAddress: inv.CustomerAddress,
		IssueDate:       utcDate(inv.IssueDate),
		DueDate:         utcDatePtr(inv.DueDate),
		TotalAmount:     inv.TotalAmount,
		Status:          inv.Status.String(),
		Notes:           inv.Notes,
		UserID:          inv.UserID,
		Items:           make([]InvoiceItemModel, 0, len(inv.Items)),
	}
	for _, it := range inv.Items {
		m.Items = append(m.Items, *InvoiceItemModelFromDomain(inv.ID, it))
	}
	return m
}

// InvoiceItemModel is one invoice line.
type InvoiceItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position        int             `gorm:"not null"`
	ItemID          *uuid.UUID      `gorm:"type:uuid;index"`
	ItemDescription string          `gorm:"type:varchar(255);not null"`
	Quantity        int64           `gorm:"not null"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	LineTotal       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem.
func (m *InvoiceItemModel) ToDomain() invoicing.InvoiceItem {
	return invoicing.InvoiceItem{
		ID:              m.ID,
		InvoiceID:       m.InvoiceID,
		Position:        m.Position,
		ItemID:          m.ItemID,
		ItemDescription: m.ItemDescription,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		LineTotal:       m.LineTotal,
	}
}

// InvoiceItemModelFromDomain creates a persistence model for a line of invoiceID.
func InvoiceItemModelFromDomain(invoiceID uuid.UUID, it invoicing.InvoiceItem) *InvoiceItemModel {
	id := it.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &InvoiceItemModel{
		ID:              id,
		InvoiceID:       invoiceID,
		Position:        it.Position,
		ItemID:          it.ItemID,
		ItemDescription: it.ItemDescription,
		Quantity:        it.Quantity,
		UnitPrice:       it.UnitPrice,
		LineTotal:       it.LineTotal,
	}
}
