package worker

// stock_alert_worker.go
// Processes low-stock alert jobs from QueueStockAlerts: resolves the business
// owner's email and sends a notification via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/infra"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// StockAlertWorker processes low-stock jobs from QueueStockAlerts.
type StockAlertWorker struct {
	users  repository.UserRepository
	mailer *infra.Mailer
	rdb    *redis.Client
}

func NewStockAlertWorker(users repository.UserRepository, mailer *infra.Mailer, rdb *redis.Client) *StockAlertWorker {
	return &StockAlertWorker{users: users, mailer: mailer, rdb: rdb}
}

// Process resolves the business owner and mails the alert. Jobs with no
// deliverable recipient are dropped with a log line; send failures go to the
// DLQ so an operator can replay them.
func (w *StockAlertWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload StockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("stock_alert_worker: invalid payload")
		return
	}

	businessID, err := uuid.Parse(payload.BusinessID)
	if err != nil {
		log.Error().Str("business_id", payload.BusinessID).Msg("stock_alert_worker: invalid business_id")
		return
	}

	owner, err := w.users.FindOwner(ctx, businessID)
	if err != nil {
		log.Warn().Err(err).Str("business_id", payload.BusinessID).Msg("stock_alert_worker: no owner found")
		return
	}
	if owner.Email == nil || *owner.Email == "" {
		log.Warn().Str("business_id", payload.BusinessID).Msg("stock_alert_worker: owner has no email — skipping")
		return
	}

	subject := fmt.Sprintf("Stock bajo: %s", payload.IngredientName)
	body := fmt.Sprintf(
		"El ingrediente %q quedó en %s %s, por debajo del mínimo de %s %s.\n\nRevisá el inventario para reponer stock.",
		payload.IngredientName, payload.Stock, payload.Unit, payload.MinStock, payload.Unit,
	)

	if err := w.mailer.SendStockAlert(*owner.Email, subject, body); err != nil {
		log.Error().Err(err).Str("to", *owner.Email).Msg("stock_alert_worker: failed to send email")
		parkJob(ctx, w.rdb, QueueStockAlerts, "stock_alert", raw, err.Error())
		return
	}
	log.Info().
		Str("to", *owner.Email).
		Str("ingredient", payload.IngredientName).
		Msg("stock_alert_worker: alert sent")
}
