package payment

import (
	"context"

	"PlisioPay/internal/domain/invoice"
)

//go:generate mockgen -source api.go -destination mock_api.go -package payment

// InvoiceAPI is the white-label invoice endpoint set used by the sheet.
type InvoiceAPI interface {
	FetchInvoice(ctx context.Context, id invoice.ID, key invoice.ViewKey) (invoice.Details, error)
	SetUserEmail(ctx context.Context, email string, id invoice.ID, key invoice.ViewKey) (invoice.Details, error)
	SetCurrency(ctx context.Context, currency invoice.CurrencyID, id invoice.ID, key invoice.ViewKey) (invoice.Details, error)
}

// InvoiceCreator creates invoices with the shop API key.
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, req invoice.NewRequest) (invoice.Created, error)
}

// InvoiceMemo remembers created invoices so that a repeated order reuses them.
type InvoiceMemo interface {
	Recall(ctx context.Context, key string) (invoice.Remembered, bool, error)
	Remember(ctx context.Context, r invoice.Remembered) error
}
