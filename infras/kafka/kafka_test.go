package kafka_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooker/infras/kafka"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:   "BN-2025-001",
		Value: map[string]any{"type": "booking.payment_completed"},
	}

	kafkaMsg, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("BN-2025-001"), kafkaMsg.Key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(kafkaMsg.Value, &decoded))
	assert.Equal(t, "booking.payment_completed", decoded["type"])
}

func TestMessage_ToKafkaMessageRejectsUnencodable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()

	assert.Error(t, err)
}
