package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"craftlab/careers/internal/repositories"
)

const (
	queueSize     = 100
	pollBatchSize = 10
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(opportunityID uuid.UUID)
}

type worker struct {
	opportunityRepo repositories.OpportunityRepository
	indexer         IndexerService
	jobQueue        chan uuid.UUID
	concurrency     int
	pollInterval    time.Duration
	wg              sync.WaitGroup
	stopChan        chan struct{}
	stopOnce        sync.Once
	logger          *zap.Logger
}

// NewWorker returns a pool that indexes opportunities in the background.
// Opportunities missed by EnqueueJob are picked up by the poller.
func NewWorker(
	opportunityRepo repositories.OpportunityRepository,
	indexer IndexerService,
	concurrency int,
	pollInterval time.Duration,
	logger *zap.Logger,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		opportunityRepo: opportunityRepo,
		indexer:         indexer,
		jobQueue:        make(chan uuid.UUID, queueSize),
		concurrency:     concurrency,
		pollInterval:    pollInterval,
		stopChan:        make(chan struct{}),
		logger:          logger.Named("worker"),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	if w.pollInterval > 0 {
		w.wg.Add(1)
		go w.pollUnindexed(ctx)
	}

	w.logger.Info("worker started", zap.Int("concurrency", w.concurrency))
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
	w.wg.Wait()
	w.logger.Info("worker stopped")
}

// EnqueueJob implements Worker. It drops the job when the queue is full;
// the poller will find it later.
func (w *worker) EnqueueJob(opportunityID uuid.UUID) {
	select {
	case <-w.stopChan:
		w.logger.Warn("worker stopped, cannot enqueue", zap.String("opportunity_id", opportunityID.String()))
	case w.jobQueue <- opportunityID:
	default:
		w.logger.Warn("index queue full, deferring to poller", zap.String("opportunity_id", opportunityID.String()))
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case id := <-w.jobQueue:
			log := w.logger.With(zap.Int("worker", workerID), zap.String("opportunity_id", id.String()))
			if err := w.indexer.IndexOpportunity(ctx, id); err != nil {
				log.Error("indexing failed", zap.Error(err))
			} else {
				log.Debug("indexing completed")
			}
		}
	}
}

func (w *worker) pollUnindexed(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.opportunityRepo.FindUnindexed(ctx, pollBatchSize)
			if err != nil {
				w.logger.Warn("failed to fetch unindexed opportunities", zap.Error(err))
				continue
			}

			if len(pending) > 0 {
				w.logger.Info("found unindexed opportunities", zap.Int("count", len(pending)))
			}

			for _, opp := range pending {
				w.EnqueueJob(opp.ID)
			}
		}
	}
}
