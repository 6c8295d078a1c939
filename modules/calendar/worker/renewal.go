package worker

import (
	"context"

	"venuehub/core/logger"
	"venuehub/modules/calendar/service"

	"github.com/hibiken/asynq"
)

// TaskWebhookRenew re-registers push channels approaching expiry. Scheduled
// hourly; each run is idempotent.
const TaskWebhookRenew = "calendar:webhook:renew"

type WebhookRenewalWorker struct {
	webhooks service.WebhookService
}

func NewWebhookRenewalWorker(webhooks service.WebhookService) *WebhookRenewalWorker {
	return &WebhookRenewalWorker{webhooks: webhooks}
}

func (w *WebhookRenewalWorker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskWebhookRenew, w.HandleRenewTask)
}

func (w *WebhookRenewalWorker) HandleRenewTask(ctx context.Context, _ *asynq.Task) error {
	if err := w.webhooks.RenewExpiring(ctx); err != nil {
		logger.Error("WebhookRenewalWorker:HandleRenewTask:Error", "error", err)
		return err
	}
	return nil
}
