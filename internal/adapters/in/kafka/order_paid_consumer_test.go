package kafka_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"fulfillment/internal/adapters/in/kafka"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateFulfillmentHandler struct {
	mock.Mock
}

func (m *MockCreateFulfillmentHandler) Handle(ctx context.Context, command commands.CreateFulfillmentJobCommand) (commands.CreateFulfillmentJobResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.CreateFulfillmentJobResult), args.Error(1)
}

type fakeSession struct {
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32                        { return nil }
func (s *fakeSession) MemberID() string                                  { return "member" }
func (s *fakeSession) GenerationID() int32                               { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)           {}
func (s *fakeSession) Commit()                                           {}
func (s *fakeSession) ResetOffset(string, int32, int64, string)          {}
func (s *fakeSession) Context() context.Context                          { return s.ctx }
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) { s.marked = append(s.marked, msg.Offset) }

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func newFakeClaim(payloads ...string) *fakeClaim {
	ch := make(chan *sarama.ConsumerMessage, len(payloads))
	for i, p := range payloads {
		ch <- &sarama.ConsumerMessage{Topic: "orders.paid", Offset: int64(i), Value: []byte(p)}
	}
	close(ch)
	return &fakeClaim{messages: ch}
}

func (c *fakeClaim) Topic() string                            { return "orders.paid" }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func event(orderID, storeID kernel.UUID) string {
	return `{"orderId":"` + orderID.String() + `","storeId":"` + storeID.String() + `"}`
}

func TestOrderPaidHandler_CreatesFulfillmentAndMarks(t *testing.T) {
	handler := &MockCreateFulfillmentHandler{}
	orderID, storeID := kernel.NewUUID(), kernel.NewUUID()

	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateFulfillmentJobCommand) bool {
		return cmd.OrderID().IsEqual(orderID) && cmd.StoreID().IsEqual(storeID)
	})).Return(commands.CreateFulfillmentJobResult{Success: true, Created: true}, nil).Once()

	session := &fakeSession{ctx: context.Background()}
	consumer := kafka.NewOrderPaidHandler(handler, discardLogger())

	err := consumer.ConsumeClaim(session, newFakeClaim(event(orderID, storeID)))

	require.NoError(t, err)
	assert.Equal(t, []int64{0}, session.marked)
	handler.AssertExpectations(t)
}

func TestOrderPaidHandler_PassesItems(t *testing.T) {
	handler := &MockCreateFulfillmentHandler{}
	orderID, storeID, productID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	payload := `{"orderId":"` + orderID.String() + `","storeId":"` + storeID.String() +
		`","items":[{"productId":"` + productID.String() + `","name":"Mug","quantity":2,"unitPriceCents":1500}]}`

	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateFulfillmentJobCommand) bool {
		items := cmd.Items()
		return len(items) == 1 && items[0].ProductID.IsEqual(productID) && items[0].Quantity == 2
	})).Return(commands.CreateFulfillmentJobResult{Success: true}, nil).Once()

	session := &fakeSession{ctx: context.Background()}
	err := kafka.NewOrderPaidHandler(handler, discardLogger()).ConsumeClaim(session, newFakeClaim(payload))

	require.NoError(t, err)
	assert.Len(t, session.marked, 1)
	handler.AssertExpectations(t)
}

func TestOrderPaidHandler_DropsMalformedEvents(t *testing.T) {
	handler := &MockCreateFulfillmentHandler{}
	session := &fakeSession{ctx: context.Background()}

	err := kafka.NewOrderPaidHandler(handler, discardLogger()).ConsumeClaim(session, newFakeClaim(
		`not json`,
		`{"orderId":"nope","storeId":"`+kernel.NewUUID().String()+`"}`,
		`{"storeId":"`+kernel.NewUUID().String()+`"}`,
	))

	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, session.marked)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestOrderPaidHandler_MarksRejectedOrders(t *testing.T) {
	for _, rejection := range []error{commands.ErrOrderNotFound, commands.ErrFraudBlocked, commands.ErrNoValidProducts} {
		t.Run(rejection.Error(), func(t *testing.T) {
			handler := &MockCreateFulfillmentHandler{}
			handler.On("Handle", mock.Anything, mock.Anything).
				Return(commands.CreateFulfillmentJobResult{}, rejection).Once()
			session := &fakeSession{ctx: context.Background()}

			err := kafka.NewOrderPaidHandler(handler, discardLogger()).
				ConsumeClaim(session, newFakeClaim(event(kernel.NewUUID(), kernel.NewUUID())))

			require.NoError(t, err)
			assert.Len(t, session.marked, 1)
		})
	}
}

func TestOrderPaidHandler_StopsOnTransientFailure(t *testing.T) {
	handler := &MockCreateFulfillmentHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.CreateFulfillmentJobResult{}, errors.New("connection reset")).Once()
	session := &fakeSession{ctx: context.Background()}

	err := kafka.NewOrderPaidHandler(handler, discardLogger()).ConsumeClaim(session, newFakeClaim(
		event(kernel.NewUUID(), kernel.NewUUID()),
		event(kernel.NewUUID(), kernel.NewUUID()),
	))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Empty(t, session.marked)
	handler.AssertNumberOfCalls(t, "Handle", 1)
}

func TestOrderPaidHandler_ReturnsWhenSessionEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	session := &fakeSession{ctx: ctx}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage)}

	err := kafka.NewOrderPaidHandler(&MockCreateFulfillmentHandler{}, discardLogger()).ConsumeClaim(session, claim)

	require.NoError(t, err)
}
