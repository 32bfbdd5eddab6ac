package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"basecamp/config"
	"basecamp/infras/otel"
	"basecamp/shared/constant"
)

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// Producer publishes domain events. Publishing is best-effort for callers
// that treat the event as a side channel; they log and move on.
type Producer interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) error
}

type producerImpl struct {
	config *config.Config
	otel   otel.Otel
	writer *kafkaGo.Writer
}

func (p *producerImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".SendMessages")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("topic", topic)

	kafkaMessages := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		kafkaMessage, err := message.ToKafkaMessage()
		if err != nil {
			return err
		}

		kafkaMessage.Topic = topic
		kafkaMessages = append(kafkaMessages, kafkaMessage)
	}

	if err = p.writer.WriteMessages(ctx, kafkaMessages...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to write kafka messages")

		return fmt.Errorf("failed to write kafka messages: %w", err)
	}

	return nil
}

func New(cfg *config.Config, otl otel.Otel) Producer {
	writer := &kafkaGo.Writer{
		Addr:     kafkaGo.TCP(cfg.External.Kafka.Brokers...),
		Balancer: &kafkaGo.LeastBytes{},
	}

	if cfg.External.Kafka.Username != "" {
		writer.Transport = &kafkaGo.Transport{
			SASL: plain.Mechanism{
				Username: cfg.External.Kafka.Username,
				Password: cfg.External.Kafka.Password,
			},
		}
	}

	log.Info().Strs("brokers", cfg.External.Kafka.Brokers).Msg("Kafka producer initialized")

	return &producerImpl{
		config: cfg,
		otel:   otl,
		writer: writer,
	}
}
