package events

import (
	"context"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"minka/config"
	"minka/infras/kafka"
	"minka/infras/otel"
	"minka/internal/domains/reservation/model/dto"
	"minka/shared/constant"
)

// ReservationConsumer reads confirmed-reservation events and records them.
// Guest notifications hang off this consumer so the webhook path stays fast.
type ReservationConsumer struct {
	broker kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewReservationConsumer(broker kafka.Client, cfg *config.Config, otel otel.Otel) *ReservationConsumer {
	return &ReservationConsumer{
		broker: broker,
		cfg:    cfg,
		otel:   otel,
	}
}

// Start consumes until the context is cancelled. It blocks, so run it on its
// own goroutine.
func (c *ReservationConsumer) Start(ctx context.Context) {
	c.broker.Consume(ctx, c.cfg.Broker.Kafka.ConsumerGroup, constant.KafkaTopicReservationConfirmed, c.handle)
}

func (c *ReservationConsumer) handle(msg kafkaGo.Message) {
	_, scope := c.otel.NewScope(context.Background(), constant.OtelEventScopeName, constant.OtelEventScopeName+".ReservationConfirmed")
	defer scope.End()

	decoded, err := kafka.DecodeKafkaMessage[dto.ReservationConfirmedEvent](msg)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode reservation confirmed event")

		return
	}

	event, ok := decoded.Value.(dto.ReservationConfirmedEvent)
	if !ok {
		log.Error().Msg("unexpected payload type for reservation confirmed event")

		return
	}

	log.Info().
		Str("reservationID", event.ReservationID).
		Str("houseID", event.HouseID).
		Str("userID", event.UserID).
		Int("amount", event.Amount).
		Msg("reservation confirmed")
}
