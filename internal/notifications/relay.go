package notifications

import (
	"context"
	"time"

	"bokning/pkg/kafka"
	"bokning/pkg/logger"
	"bokning/pkg/model"
)

const relaySource = "bokning"

// KafkaRelay mirrors change events onto a Kafka topic for external
// consumers. Delivery is fire and forget: a broker failure is logged, never
// surfaced to the request that caused the event.
type KafkaRelay struct {
	producer *kafka.Producer
	timeout  time.Duration
	log      *logger.Logger
}

func NewKafkaRelay(producer *kafka.Producer, timeout time.Duration, log *logger.Logger) *KafkaRelay {
	return &KafkaRelay{
		producer: producer,
		timeout:  timeout,
		log:      log,
	}
}

func (r *KafkaRelay) Publish(event model.ChangeEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		msg := kafka.NewMessage().
			WithKey(event.BookingID).
			WithValue(event).
			WithEventID(event.ID).
			WithEventType(string(event.Kind)).
			WithSource(relaySource).
			Build()

		if err := r.producer.Publish(ctx, msg); err != nil {
			r.log.Error("Failed to relay change event to Kafka",
				"event_id", event.ID,
				"event_kind", event.Kind,
				"error", err,
			)
		}
	}()
}

func (r *KafkaRelay) Close() error {
	return r.producer.Close()
}
