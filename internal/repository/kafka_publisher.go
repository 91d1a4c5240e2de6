package repository

import (
	"context"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
	pkgkafka "github.com/ashishpawar00/KeywordResearchTool/pkg/kafka"
)

// KafkaPublisher ships fetch events to a Kafka topic, keyed by keyword so
// one keyword's events land in one partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev *models.FetchEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Keyword), ev)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
