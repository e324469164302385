package usecase

import (
	"context"

	"github.com/reelgrowth/lead-relay/internal/infra/integration/brevo"
)

type CRMConnectorInterface interface {
	UpsertContact(ctx context.Context, input brevo.UpsertContactInput) brevo.UpsertContactResult
	MarkPurchased(ctx context.Context, email string, orderID int64) brevo.OpResult
}
