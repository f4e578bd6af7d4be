package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	"github.com/fxledger/fxledger/internal/middleware"
	"github.com/fxledger/fxledger/pkg/config"
)

// ConnectionSyncer runs one ingestion cycle for a connection.
type ConnectionSyncer interface {
	SyncConnection(ctx context.Context, connectionID string) (*domain.SyncResult, error)
}

// RateRefresher reloads the exchange-rate cache from the provider.
type RateRefresher interface {
	Refresh(ctx context.Context) (*domain.RateRefreshEvent, error)
}

// Revaluer prices open positions and books the aggregate adjustment.
type Revaluer interface {
	Revalue(ctx context.Context, asOf time.Time, requestingUserID string) (*domain.RevaluationResult, error)
}

// Scheduler owns every periodic background task: one sync loop per
// registered connection, the rate refresh loop, and the optional
// revaluation loop. Tasks are registered explicitly and each runs in its
// own goroutine, so one connection's failures never stall another's
// schedule.
type Scheduler struct {
	cfg      *config.Config
	connRepo portsrepo.ConnectionReader
	syncer   ConnectionSyncer
	rates    RateRefresher
	revaluer Revaluer
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
	runCtx  context.Context
	cancel  context.CancelFunc
	tasks   map[string]*connectionTask
	wg      sync.WaitGroup
}

type connectionTask struct {
	interval time.Duration
	cancel   context.CancelFunc // nil until the task loop is running
}

// New creates a scheduler. Start must be called before any task runs.
func New(
	cfg *config.Config,
	connRepo portsrepo.ConnectionReader,
	syncer ConnectionSyncer,
	rates RateRefresher,
	revaluer Revaluer,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		connRepo: connRepo,
		syncer:   syncer,
		rates:    rates,
		revaluer: revaluer,
		logger:   logger,
		tasks:    make(map[string]*connectionTask),
	}
}

// Start seeds the registry with every active connection and launches the
// task loops. The context is the parent of every loop: canceling it stops
// the scheduler just like Stop does.
func (s *Scheduler) Start(ctx context.Context) error {
	conns, err := s.connRepo.ListConnections(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to load connections for scheduling: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("scheduler already started")
	}
	s.runCtx, s.cancel = context.WithCancel(ctx)
	s.started = true

	for _, conn := range conns {
		if _, ok := s.tasks[conn.ConnectionID]; ok {
			continue
		}
		s.tasks[conn.ConnectionID] = &connectionTask{
			interval: s.cfg.SyncIntervalFor(string(conn.SyncInterval)),
		}
	}
	for connectionID, task := range s.tasks {
		s.spawnLocked(connectionID, task)
	}

	s.wg.Add(1)
	go s.runRateRefreshLoop(s.runCtx)

	if s.cfg.RevalueInterval > 0 {
		s.wg.Add(1)
		go s.runRevaluationLoop(s.runCtx)
	}

	s.logger.Info("Scheduler started",
		slog.Int("connections", len(s.tasks)),
		slog.Duration("rate_refresh_interval", s.cfg.RateRefreshInterval),
		slog.Duration("revalue_interval", s.cfg.RevalueInterval),
	)
	return nil
}

// Stop cancels every task loop and waits for in-flight cycles to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
}

// Register adds or replaces the sync task for a connection. Before Start
// the registration is only recorded; afterwards the loop spawns
// immediately.
func (s *Scheduler) Register(connectionID string, interval domain.SyncInterval) {
	duration := s.cfg.SyncIntervalFor(string(interval))

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.tasks[connectionID]; ok && existing.cancel != nil {
		existing.cancel()
	}
	task := &connectionTask{interval: duration}
	s.tasks[connectionID] = task
	if s.started {
		s.spawnLocked(connectionID, task)
	}
}

// Deregister stops and removes the sync task for a connection. An
// in-flight cycle finishes; no further ticks fire.
func (s *Scheduler) Deregister(connectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[connectionID]
	if !ok {
		return
	}
	if task.cancel != nil {
		task.cancel()
	}
	delete(s.tasks, connectionID)
}

// SyncNow runs one immediate cycle for a connection, outside its tick
// schedule but through the same code path the scheduled loops use.
func (s *Scheduler) SyncNow(ctx context.Context, connectionID string) (*domain.SyncResult, error) {
	return s.syncer.SyncConnection(ctx, connectionID)
}

func (s *Scheduler) spawnLocked(connectionID string, task *connectionTask) {
	taskCtx, cancel := context.WithCancel(s.runCtx)
	task.cancel = cancel
	s.wg.Add(1)
	go s.runConnectionLoop(taskCtx, connectionID, task.interval)
}

// runConnectionLoop ticks one connection. The ticker drops ticks while a
// cycle runs, so a slow cycle never queues a burst; the checkpoint
// look-back recovers whatever the dropped ticks would have fetched.
func (s *Scheduler) runConnectionLoop(ctx context.Context, connectionID string, interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Debug("Connection sync task started",
		slog.String("connection_id", connectionID),
		slog.Duration("interval", interval),
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.runSyncCycle(ctx, connectionID) {
				s.Deregister(connectionID)
				return
			}
		}
	}
}

// runSyncCycle runs one cycle and reports whether the task should stay
// registered. The ingestion service re-reads the connection on every
// cycle, so a deactivation surfaces here as ErrConflict no later than the
// next tick.
func (s *Scheduler) runSyncCycle(ctx context.Context, connectionID string) bool {
	cycleCtx := middleware.WithLogger(ctx, s.logger)

	_, err := s.syncer.SyncConnection(cycleCtx, connectionID)
	if err == nil {
		return true
	}

	if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Info("Connection no longer syncable, deregistering task",
			slog.String("connection_id", connectionID),
			slog.String("reason", err.Error()),
		)
		return false
	}

	s.logger.Error("Scheduled sync cycle failed",
		slog.String("connection_id", connectionID),
		slog.String("error", err.Error()),
	)
	return true
}

func (s *Scheduler) runRateRefreshLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.RateRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cycleCtx := middleware.WithLogger(ctx, s.logger)
			if _, err := s.rates.Refresh(cycleCtx); err != nil {
				s.logger.Warn("Scheduled rate refresh failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *Scheduler) runRevaluationLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.RevalueInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cycleCtx := middleware.WithLogger(ctx, s.logger)
			if _, err := s.revaluer.Revalue(cycleCtx, time.Time{}, domain.SystemActor); err != nil {
				s.logger.Error("Scheduled revaluation failed", slog.String("error", err.Error()))
			}
		}
	}
}
