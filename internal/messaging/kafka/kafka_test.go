package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/messaging"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestPublishEvent_BuildsOrderMessage(t *testing.T) {
	ctx := context.Background()
	w := new(MockWriter)
	var sent []kafkaGo.Message
	w.On("WriteMessages", ctx, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).([]kafkaGo.Message)
	}).Return(nil)
	p := newPublisher(w)

	event := messaging.OrderPlaced{OrderID: "ORD-1", UserID: "2", ItemCount: 2, TotalPrice: 170, CreatedAt: "2026-01-01T10:00:00.000Z"}
	require.NoError(t, p.PublishEvent(ctx, messaging.TopicOrdersPlaced, "ORD-1", event))

	require.Len(t, sent, 1)
	msg := sent[0]
	assert.Equal(t, "orders.placed", msg.Topic)
	assert.Equal(t, []byte("ORD-1"), msg.Key)
	assert.Equal(t, []kafkaGo.Header{{Key: "content-type", Value: []byte("application/json")}}, msg.Headers)

	var decoded messaging.OrderPlaced
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestPublishEvent_ReturnsWriterError(t *testing.T) {
	ctx := context.Background()
	w := new(MockWriter)
	w.On("WriteMessages", ctx, mock.Anything).Return(errors.New("broker down"))

	err := newPublisher(w).PublishEvent(ctx, messaging.TopicOrdersPlaced, "ORD-1", messaging.OrderPlaced{OrderID: "ORD-1"})
	assert.EqualError(t, err, "broker down")
}

func TestPublishEvent_RejectsUnencodableEvent(t *testing.T) {
	w := new(MockWriter)

	err := newPublisher(w).PublishEvent(context.Background(), messaging.TopicOrdersPlaced, "k", make(chan int))
	assert.Error(t, err)
	w.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestClose_ClosesWriter(t *testing.T) {
	w := new(MockWriter)
	w.On("Close").Return(nil)

	require.NoError(t, newPublisher(w).Close())
	w.AssertExpectations(t)
}
