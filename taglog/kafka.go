package taglog

import (
	"encoding/json"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

// KafkaSink publishes tag log rows to a topic through an async producer.
// Acks and delivery reports are disabled, log rows are best effort.
type KafkaSink struct {
	producer sarama.AsyncProducer
	topic    string
}

func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.NoResponse
	config.Producer.Partitioner = sarama.NewRoundRobinPartitioner
	config.Producer.Return.Successes = false
	config.Producer.Return.Errors = false

	producer, err := sarama.NewAsyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &KafkaSink{producer: producer, topic: topic}, nil
}

func (s *KafkaSink) Write(record Record) {
	value, err := json.Marshal(record)
	if err != nil {
		log.WithError(err).Error("Failed to marshal tag log row for kafka.")
		return
	}

	s.producer.Input() <- &sarama.ProducerMessage{
		Topic: s.topic,
		Value: sarama.ByteEncoder(value),
	}
}

func (s *KafkaSink) Close() error {
	return s.producer.Close()
}
