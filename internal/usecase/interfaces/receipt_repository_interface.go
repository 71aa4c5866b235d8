package interfaces

import (
	"context"

	"marketplace_billing/internal/domain/entities"
)

//go:generate mockgen -source=receipt_repository_interface.go -destination=mocks/mock_receipt_repository.go -package=mock_interfaces

// IReceiptRepository abstracts the receipts dispatch log.
type IReceiptRepository interface {
	Create(ctx context.Context, r entities.ReceiptRecord) (entities.ReceiptRecord, error)
	ListByPaymentID(ctx context.Context, paymentID string) ([]entities.ReceiptRecord, error)
}
