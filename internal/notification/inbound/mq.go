package inbound

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/shared/event"
)

type consumer struct {
	name    string
	topic   string
	handler messaging.Handler
}

// RegisterMQConsumer starts one goroutine per consumer listed in
// modules.notification.consumer_names.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Consumer,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	h := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	consumers := enabledConsumers(h, cfg.GetArray("modules.notification.consumer_names"))
	concurrency := max(cfg.GetInt("modules.notification.concurrency"), 1)

	for _, c := range consumers {
		routine.Go(ctx, c.name, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "consumer", c.name)
			return messenger.Consume(pCtx,
				c.topic,
				c.handler,
				messaging.WithGroup(c.name),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(concurrency),
			)
		})
	}
}

func enabledConsumers(h *MQHandler, names []string) []consumer {
	all := []consumer{
		{
			name:    event.UserRegisteredConsumerNotification,
			topic:   event.UserRegisteredTopic,
			handler: h.UserRegisteredNotification,
		},
		{
			name:    event.UserPasswordChangedConsumerNotification,
			topic:   event.UserPasswordChangedTopic,
			handler: h.UserPasswordChangedNotification,
		},
	}

	return lo.Filter(all, func(c consumer, _ int) bool {
		return lo.Contains(names, c.name)
	})
}
