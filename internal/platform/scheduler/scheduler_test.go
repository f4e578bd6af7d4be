package scheduler_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/platform/scheduler"
	"github.com/fxledger/fxledger/pkg/config"
	"github.com/stretchr/testify/require"
)

// The loops run concurrently, so these tests use counting stubs guarded by
// their own locks instead of mock.Mock, whose call history is not safe to
// poll while goroutines are still recording into it.

type stubSyncer struct {
	mu     sync.Mutex
	calls  map[string]int
	errFor map[string]error
}

func newStubSyncer() *stubSyncer {
	return &stubSyncer{calls: make(map[string]int), errFor: make(map[string]error)}
}

func (s *stubSyncer) SyncConnection(ctx context.Context, connectionID string) (*domain.SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[connectionID]++
	if err := s.errFor[connectionID]; err != nil {
		return nil, err
	}
	return &domain.SyncResult{ConnectionID: connectionID, Fetched: 1, Inserted: 1}, nil
}

func (s *stubSyncer) count(connectionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[connectionID]
}

func (s *stubSyncer) failWith(connectionID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errFor[connectionID] = err
}

type stubRefresher struct {
	n atomic.Int64
}

func (s *stubRefresher) Refresh(ctx context.Context) (*domain.RateRefreshEvent, error) {
	s.n.Add(1)
	return &domain.RateRefreshEvent{Base: "INR"}, nil
}

type stubRevaluer struct {
	n         atomic.Int64
	lastActor atomic.Value
}

func (s *stubRevaluer) Revalue(ctx context.Context, asOf time.Time, requestingUserID string) (*domain.RevaluationResult, error) {
	s.lastActor.Store(requestingUserID)
	s.n.Add(1)
	return &domain.RevaluationResult{}, nil
}

type stubConnectionReader struct {
	conns []domain.BankConnection
}

func (s *stubConnectionReader) FindConnectionByID(ctx context.Context, connectionID string) (*domain.BankConnection, error) {
	for i := range s.conns {
		if s.conns[i].ConnectionID == connectionID {
			return &s.conns[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *stubConnectionReader) ListConnections(ctx context.Context, onlyActive bool) ([]domain.BankConnection, error) {
	return s.conns, nil
}

func testConfig() *config.Config {
	return &config.Config{
		BaseCurrency:         "INR",
		RateRefreshInterval:  10 * time.Millisecond,
		SyncRealtimeInterval: 10 * time.Millisecond,
		SyncHourlyInterval:   15 * time.Millisecond,
		SyncDailyInterval:    20 * time.Millisecond,
		RevalueInterval:      0,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerSeedsActiveConnectionsOnStart(t *testing.T) {
	syncer := newStubSyncer()
	reader := &stubConnectionReader{conns: []domain.BankConnection{
		{ConnectionID: "conn-rt", SyncInterval: domain.SyncRealtime, IsActive: true},
		{ConnectionID: "conn-daily", SyncInterval: domain.SyncDaily, IsActive: true},
	}}
	sched := scheduler.New(testConfig(), reader, syncer, &stubRefresher{}, &stubRevaluer{}, discardLogger())

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	require.Eventually(t, func() bool {
		return syncer.count("conn-rt") >= 2 && syncer.count("conn-daily") >= 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSchedulerStartTwiceFails(t *testing.T) {
	sched := scheduler.New(testConfig(), &stubConnectionReader{}, newStubSyncer(), &stubRefresher{}, &stubRevaluer{}, discardLogger())

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	require.Error(t, sched.Start(context.Background()))
}

func TestSchedulerStopHaltsTicking(t *testing.T) {
	syncer := newStubSyncer()
	reader := &stubConnectionReader{conns: []domain.BankConnection{
		{ConnectionID: "conn-rt", SyncInterval: domain.SyncRealtime, IsActive: true},
	}}
	sched := scheduler.New(testConfig(), reader, syncer, &stubRefresher{}, &stubRevaluer{}, discardLogger())

	require.NoError(t, sched.Start(context.Background()))
	require.Eventually(t, func() bool { return syncer.count("conn-rt") >= 1 }, 2*time.Second, 5*time.Millisecond)

	sched.Stop()

	// Stop waits for in-flight cycles, so the count is settled once it returns.
	after := syncer.count("conn-rt")
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, after, syncer.count("conn-rt"))
}

func TestSchedulerRegisterAfterStartSpawnsTask(t *testing.T) {
	syncer := newStubSyncer()
	sched := scheduler.New(testConfig(), &stubConnectionReader{}, syncer, &stubRefresher{}, &stubRevaluer{}, discardLogger())

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	sched.Register("conn-new", domain.SyncRealtime)

	require.Eventually(t, func() bool { return syncer.count("conn-new") >= 1 }, 2*time.Second, 5*time.Millisecond)
}

func TestSchedulerDeregisterStopsTask(t *testing.T) {
	syncer := newStubSyncer()
	reader := &stubConnectionReader{conns: []domain.BankConnection{
		{ConnectionID: "conn-rt", SyncInterval: domain.SyncRealtime, IsActive: true},
	}}
	sched := scheduler.New(testConfig(), reader, syncer, &stubRefresher{}, &stubRevaluer{}, discardLogger())

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	require.Eventually(t, func() bool { return syncer.count("conn-rt") >= 1 }, 2*time.Second, 5*time.Millisecond)

	sched.Deregister("conn-rt")
	settled := syncer.count("conn-rt")
	time.Sleep(60 * time.Millisecond)
	require.LessOrEqual(t, syncer.count("conn-rt"), settled+1, "at most one in-flight cycle may finish after deregistration")
}

func TestSchedulerDeregistersInactiveConnection(t *testing.T) {
	syncer := newStubSyncer()
	syncer.failWith("conn-gone", fmt.Errorf("%w: connection conn-gone is inactive", apperrors.ErrConflict))
	reader := &stubConnectionReader{conns: []domain.BankConnection{
		{ConnectionID: "conn-gone", SyncInterval: domain.SyncRealtime, IsActive: true},
	}}
	sched := scheduler.New(testConfig(), reader, syncer, &stubRefresher{}, &stubRevaluer{}, discardLogger())

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	require.Eventually(t, func() bool { return syncer.count("conn-gone") == 1 }, 2*time.Second, 5*time.Millisecond)

	// The first conflicting cycle removes the task; no more ticks fire.
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, 1, syncer.count("conn-gone"))
}

func TestSchedulerCycleFailureKeepsOtherTasksRunning(t *testing.T) {
	syncer := newStubSyncer()
	syncer.failWith("conn-flaky", fmt.Errorf("feed temporarily unavailable"))
	reader := &stubConnectionReader{conns: []domain.BankConnection{
		{ConnectionID: "conn-flaky", SyncInterval: domain.SyncRealtime, IsActive: true},
		{ConnectionID: "conn-ok", SyncInterval: domain.SyncRealtime, IsActive: true},
	}}
	sched := scheduler.New(testConfig(), reader, syncer, &stubRefresher{}, &stubRevaluer{}, discardLogger())

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	// The flaky task stays registered and keeps retrying on its schedule.
	require.Eventually(t, func() bool {
		return syncer.count("conn-flaky") >= 3 && syncer.count("conn-ok") >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSchedulerRunsRateRefreshLoop(t *testing.T) {
	refresher := &stubRefresher{}
	sched := scheduler.New(testConfig(), &stubConnectionReader{}, newStubSyncer(), refresher, &stubRevaluer{}, discardLogger())

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	require.Eventually(t, func() bool { return refresher.n.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestSchedulerRevaluationLoopDisabledByZeroInterval(t *testing.T) {
	revaluer := &stubRevaluer{}
	sched := scheduler.New(testConfig(), &stubConnectionReader{}, newStubSyncer(), &stubRefresher{}, revaluer, discardLogger())

	require.NoError(t, sched.Start(context.Background()))
	time.Sleep(60 * time.Millisecond)
	sched.Stop()

	require.Zero(t, revaluer.n.Load())
}

func TestSchedulerRunsRevaluationAsSystem(t *testing.T) {
	cfg := testConfig()
	cfg.RevalueInterval = 10 * time.Millisecond
	revaluer := &stubRevaluer{}
	sched := scheduler.New(cfg, &stubConnectionReader{}, newStubSyncer(), &stubRefresher{}, revaluer, discardLogger())

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	require.Eventually(t, func() bool { return revaluer.n.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)
	require.Equal(t, domain.SystemActor, revaluer.lastActor.Load())
}

func TestSchedulerSyncNowDelegates(t *testing.T) {
	syncer := newStubSyncer()
	sched := scheduler.New(testConfig(), &stubConnectionReader{}, syncer, &stubRefresher{}, &stubRevaluer{}, discardLogger())

	result, err := sched.SyncNow(context.Background(), "conn-manual")

	require.NoError(t, err)
	require.Equal(t, "conn-manual", result.ConnectionID)
	require.Equal(t, 1, syncer.count("conn-manual"))
}

func TestSchedulerContextCancelStopsLoops(t *testing.T) {
	syncer := newStubSyncer()
	reader := &stubConnectionReader{conns: []domain.BankConnection{
		{ConnectionID: "conn-rt", SyncInterval: domain.SyncRealtime, IsActive: true},
	}}
	sched := scheduler.New(testConfig(), reader, syncer, &stubRefresher{}, &stubRevaluer{}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, sched.Start(ctx))
	require.Eventually(t, func() bool { return syncer.count("conn-rt") >= 1 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	// Stop still waits cleanly after the parent context already ended the loops.
	sched.Stop()
	after := syncer.count("conn-rt")
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, after, syncer.count("conn-rt"))
}
