package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/feedback"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestPublishFeedback(t *testing.T) {
	w := &recordingWriter{}
	pub := NewKafkaPublisher(w)
	event := feedback.Event{
		Type:         feedback.EventCreated,
		FeedbackID:   id.New(),
		RestaurantID: id.New(),
		CustomerID:   id.New(),
		Rating:       decimal.RequireFromString("4.5"),
		Timestamp:    time.Now().UTC(),
	}

	require.NoError(t, pub.PublishFeedback(context.Background(), event))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, event.RestaurantID.String(), string(msg.Key))
	assert.Equal(t, "type", msg.Headers[0].Key)
	assert.Equal(t, feedback.EventCreated, string(msg.Headers[0].Value))

	var got feedback.Event
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, event.FeedbackID, got.FeedbackID)
	assert.True(t, event.Rating.Equal(got.Rating))
}

func TestPublishFeedback_WriterError(t *testing.T) {
	pub := NewKafkaPublisher(&recordingWriter{err: errors.New("no brokers")})

	err := pub.PublishFeedback(context.Background(), feedback.Event{Type: feedback.EventCreated})
	assert.Error(t, err)
}

func TestNewKafkaWriter_DefaultTopic(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, "")
	assert.Equal(t, DefaultFeedbackTopic, w.Topic)
}
