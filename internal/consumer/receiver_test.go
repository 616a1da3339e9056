package consumer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/kafka_consumer/internal/consumer"
	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/ports/mocks"
)

func TestReceiver_NoSubscriptions(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockMessageSource(ctrl)
	src.EXPECT().SubscriptionCount().Return(0)

	r := consumer.NewReceiver(src, time.Second)
	msg, err := r.Receive(context.Background())

	require.Error(t, err)
	assert.Nil(t, msg)
	assert.ErrorIs(t, err, domain.ErrNoSubscriptions)
	assert.Contains(t, err.Error(), "Subscribe()")
}

func TestReceiver_TimeoutFaultBecomesTimeoutMessage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockMessageSource(ctrl)
	src.EXPECT().SubscriptionCount().Return(1)
	src.EXPECT().Receive(gomock.Any(), 2*time.Second).
		Return(nil, domain.NewBrokerError(domain.StatusTimedOut, "fetch timed out", context.DeadlineExceeded))

	r := consumer.NewReceiver(src, 2*time.Second)
	msg, err := r.Receive(context.Background())

	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, domain.StatusTimedOut, msg.Status)
	assert.Equal(t, domain.OutcomeTimeout, domain.Classify(msg.Status))
}

func TestReceiver_OtherFaultPropagates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockMessageSource(ctrl)
	boom := domain.NewBrokerError(domain.Status(3), "unknown topic or partition", nil)
	src.EXPECT().SubscriptionCount().Return(1)
	src.EXPECT().Receive(gomock.Any(), gomock.Any()).Return(nil, boom)

	r := consumer.NewReceiver(src, 0)
	_, err := r.Receive(context.Background())

	require.Error(t, err)
	be, ok := domain.AsBrokerError(err)
	require.True(t, ok)
	assert.False(t, be.IsTimeout())
}

func TestReceiver_InterruptedReceiveBecomesTimeout(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockMessageSource(ctrl)
	src.EXPECT().SubscriptionCount().Return(1)
	src.EXPECT().Receive(gomock.Any(), gomock.Any()).Return(nil, context.Canceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg, err := consumer.NewReceiver(src, 0).Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTimedOut, msg.Status)
}

func TestReceiver_SubscribeEmptyIsNoop(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockMessageSource(ctrl) // Subscribe не ожидается

	require.NoError(t, consumer.NewReceiver(src, 0).Subscribe(context.Background(), nil))
}

func TestReceiver_CommitErrorReturned(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockMessageSource(ctrl)
	msg := okMessage("A", 1)
	src.EXPECT().Commit(gomock.Any(), msg).Return(errors.New("coordinator not available"))

	err := consumer.NewReceiver(src, 0).Commit(context.Background(), msg)
	require.EqualError(t, err, "coordinator not available")
}
