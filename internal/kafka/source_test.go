package kafka

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/kafka/mocks"
)

type nopLogger struct{}

func (nopLogger) Debugf(context.Context, string, ...any)  {}
func (nopLogger) Infof(context.Context, string, ...any)   {}
func (nopLogger) Noticef(context.Context, string, ...any) {}
func (nopLogger) Warnf(context.Context, string, ...any)   {}
func (nopLogger) Errorf(context.Context, string, ...any)  {}
func (nopLogger) Errorw(context.Context, string, ...any)  {}

// newTestSource — Source, у которого каждый новый reader берётся из readers по очереди.
func newTestSource(t *testing.T, readers ...reader) (*Source, *[]kafka.ReaderConfig) {
	t.Helper()

	var created []kafka.ReaderConfig
	s := &Source{
		cfg: SourceConfig{Brokers: []string{"b:9092"}, GroupID: "g1"},
		log: nopLogger{},
	}
	s.newReader = func(rc kafka.ReaderConfig) (reader, error) {
		require.NotEmpty(t, readers, "unexpected reader creation")
		created = append(created, rc)
		r := readers[0]
		readers = readers[1:]
		return r, nil
	}
	return s, &created
}

func subscribed(t *testing.T, r reader) *Source {
	t.Helper()
	s, _ := newTestSource(t, r)
	require.NoError(t, s.Subscribe(context.Background(), []string{"orders"}))
	return s
}

func TestSubscribe_EmptyIsNoop(t *testing.T) {
	s, created := newTestSource(t)

	require.NoError(t, s.Subscribe(context.Background(), nil))
	assert.Empty(t, *created)
	assert.Equal(t, 0, s.SubscriptionCount())
}

func TestSubscribe_GroupTopicsAndExtension(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockreader(ctrl)
	second := mocks.NewMockreader(ctrl)
	first.EXPECT().Close().Return(nil)

	s, created := newTestSource(t, first, second)
	ctx := context.Background()

	require.NoError(t, s.Subscribe(ctx, []string{"a", "b"}))
	require.NoError(t, s.Subscribe(ctx, []string{"b", "a"})) // без изменений → reader тот же
	require.NoError(t, s.Subscribe(ctx, []string{"c"}))

	require.Len(t, *created, 2)
	assert.Equal(t, []string{"a", "b"}, (*created)[0].GroupTopics)
	assert.Equal(t, []string{"a", "b", "c"}, (*created)[1].GroupTopics)
	assert.Equal(t, "g1", (*created)[1].GroupID)
	assert.Equal(t, 3, s.SubscriptionCount())
}

func TestReceive_NotSubscribed(t *testing.T) {
	s, _ := newTestSource(t)

	_, err := s.Receive(context.Background(), time.Second)
	assert.ErrorIs(t, err, domain.ErrNoSubscriptions)
}

func TestReceive_OK_MapsMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	km := kafka.Message{
		Topic: "orders", Partition: 2, Offset: 42,
		Key: []byte("k"), Value: []byte("v"), Time: ts,
		Headers: []kafka.Header{{Key: "traceparent", Value: []byte("00-abc")}},
	}
	r.EXPECT().FetchMessage(gomock.Any()).Return(km, nil)

	msg, err := subscribed(t, r).Receive(context.Background(), time.Second)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusOK, msg.Status)
	assert.Equal(t, "orders", msg.Topic)
	assert.Equal(t, 2, msg.Partition)
	assert.EqualValues(t, 42, msg.Offset)
	assert.Equal(t, []byte("v"), msg.Payload)
	assert.Equal(t, "00-abc", msg.Headers["traceparent"])
	assert.Equal(t, ts, msg.Time)
	assert.Equal(t, km, msg.Raw)
}

func TestReceive_Deadline_IsTimeoutFault(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	})

	msg, err := subscribed(t, r).Receive(context.Background(), 10*time.Millisecond)
	require.Error(t, err)
	assert.Nil(t, msg)

	be, ok := domain.AsBrokerError(err)
	require.True(t, ok)
	assert.True(t, be.IsTimeout())
}

func TestReceive_Deadline_BrokersUnreachable_AllBrokersDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, context.DeadlineExceeded)

	s := subscribed(t, r)
	s.reach = func(context.Context) error { return errors.New("dial tcp: connection refused") }

	msg, err := s.Receive(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAllBrokersDown, msg.Status)
	assert.Equal(t, domain.OutcomeAllBrokersDown, domain.Classify(msg.Status))
}

func TestReceive_Deadline_BrokersReachable_StillTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, context.DeadlineExceeded)

	s := subscribed(t, r)
	s.reach = func(context.Context) error { return nil }

	_, err := s.Receive(context.Background(), time.Second)
	be, ok := domain.AsBrokerError(err)
	require.True(t, ok)
	assert.True(t, be.IsTimeout())
}

func TestReceive_StopDuringReachabilityCheck_NotAllBrokersDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, context.DeadlineExceeded)

	s := subscribed(t, r)
	s.reach = func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	msg, err := s.Receive(ctx, time.Second)
	assert.Nil(t, msg, "stop during reachability check must not produce a status message")
	assert.ErrorIs(t, err, context.Canceled)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestBrokerReachability_ParallelFirstReachableWins(t *testing.T) {
	var closed atomic.Int32
	dial := func(ctx context.Context, addr string) (io.Closer, error) {
		if addr == "hang:9092" {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return closerFunc(func() error { closed.Add(1); return nil }), nil
	}

	start := time.Now()
	err := reachBrokers(context.Background(), dial, []string{"hang:9092", "up:9092"}, 5*time.Second)

	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second, "a hanging broker must not delay the check")
	assert.EqualValues(t, 1, closed.Load())
}

func TestBrokerReachability_AllDown_PerBrokerTimeout(t *testing.T) {
	dial := func(ctx context.Context, addr string) (io.Closer, error) {
		if addr == "hang:9092" {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return nil, errors.New("connection refused")
	}

	start := time.Now()
	err := reachBrokers(context.Background(), dial, []string{"hang:9092", "down:9092"}, 50*time.Millisecond)

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Contains(t, err.Error(), "2/2 brokers are down")
	assert.Contains(t, err.Error(), "hang:9092")
	assert.Contains(t, err.Error(), "down:9092")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBrokerReachability_ParentCancelled(t *testing.T) {
	dial := func(ctx context.Context, _ string) (io.Closer, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := reachBrokers(ctx, dial, []string{"a:9092", "b:9092"}, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBrokerReachability_NoBrokers(t *testing.T) {
	err := reachBrokers(context.Background(), nil, nil, time.Second)
	assert.EqualError(t, err, "no brokers configured")
}

func TestReceive_ProtocolError_StatusMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, kafka.UnknownTopicOrPartition)

	msg, err := subscribed(t, r).Receive(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, domain.Status(int(kafka.UnknownTopicOrPartition)), msg.Status)
	assert.Equal(t, domain.OutcomeOther, domain.Classify(msg.Status))
	assert.NotEmpty(t, msg.ErrorString())
}

func TestReceive_ParentCanceled_ReturnsCtxErr(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	s := subscribed(t, r)
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := s.Receive(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReceive_OtherError_IsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	closed := errors.New("kafka: reader closed")
	r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, closed)

	_, err := subscribed(t, r).Receive(context.Background(), time.Second)
	require.ErrorIs(t, err, closed)
	be, ok := domain.AsBrokerError(err)
	require.True(t, ok)
	assert.False(t, be.IsTimeout())
}

func TestCommit_UsesFetchedMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	km := kafka.Message{Topic: "orders", Partition: 1, Offset: 5, Value: []byte("x")}
	r.EXPECT().CommitMessages(gomock.Any(), km).Return(nil)

	err := subscribed(t, r).Commit(context.Background(), &domain.Message{Topic: "orders", Raw: km})
	require.NoError(t, err)
}

func TestCommit_WithoutRaw_BuildsFromFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().CommitMessages(gomock.Any(), kafka.Message{Topic: "orders", Partition: 3, Offset: 9}).
		Return(errors.New("rebalance in progress"))

	err := subscribed(t, r).Commit(context.Background(), &domain.Message{Topic: "orders", Partition: 3, Offset: 9})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders[3]@9")
}

func TestClose_DelegatesToReaderOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().Close().Return(nil).Times(1)

	s := subscribed(t, r)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestClose_NotSubscribed(t *testing.T) {
	s, _ := newTestSource(t)
	assert.NoError(t, s.Close())
}
