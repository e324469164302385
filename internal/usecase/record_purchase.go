package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/reelgrowth/lead-relay/internal/entity"
)

type RecordPurchaseInput struct {
	OrderID int64
	Status  string
	Email   string
}

type RecordPurchaseOutput struct {
	// Processed is false when the order status was not "completed" and the
	// event was acknowledged without side effects.
	Processed bool
	Message   string
}

type RecordPurchaseUseCase struct {
	Repo   entity.LeadRepositoryInterface
	CRM    CRMConnectorInterface
	Logger *zap.Logger
}

func NewRecordPurchaseUseCase(
	repo entity.LeadRepositoryInterface,
	crm CRMConnectorInterface,
	logger *zap.Logger,
) *RecordPurchaseUseCase {
	return &RecordPurchaseUseCase{Repo: repo, CRM: crm, Logger: logger}
}

// Execute mirrors a completed order into the CRM and the lead store. The
// purchase itself is the operative fact: once the order validated as
// completed, CRM and store hiccups degrade to warnings, never failures.
func (uc *RecordPurchaseUseCase) Execute(ctx context.Context, input RecordPurchaseInput) (*RecordPurchaseOutput, error) {
	if input.Status != "completed" {
		return &RecordPurchaseOutput{
			Processed: false,
			Message:   fmt.Sprintf("order %d ignored: status is %q, not completed", input.OrderID, input.Status),
		}, nil
	}

	email := NormalizeEmail(input.Email)
	var warnings []string

	res := uc.CRM.MarkPurchased(ctx, email, input.OrderID)
	if !res.Success {
		uc.Logger.Warn("crm purchase update failed",
			zap.Int64("order_id", input.OrderID),
			zap.String("error", res.Error))
		warnings = append(warnings, fmt.Sprintf("crm update failed: %s", res.Error))
	}

	if _, err := uc.Repo.MarkPurchased(ctx, email, input.OrderID); err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			uc.Logger.Error("store purchase update failed",
				zap.Int64("order_id", input.OrderID), zap.Error(err))
			warnings = append(warnings, "lead record update failed")
		}
		// No lead record for this email is fine; the purchase came in
		// through a channel the form pipeline never saw.
	}

	msg := fmt.Sprintf("order %d recorded for purchase", input.OrderID)
	for _, w := range warnings {
		msg += "; warning: " + w
	}

	uc.Logger.Info("purchase recorded",
		zap.Int64("order_id", input.OrderID),
		zap.Int("warnings", len(warnings)))

	return &RecordPurchaseOutput{Processed: true, Message: msg}, nil
}
