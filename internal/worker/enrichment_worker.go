package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/usecase"
)

// EnrichmentWorker drains metadata-enrichment batches from a bounded queue.
// Indexes enqueue batches without blocking; a full queue drops the batch,
// which is safe because uncached places are re-attempted the next time they
// become visible.
type EnrichmentWorker struct {
	*BaseWorker
	jobs chan usecase.EnrichJob
}

func NewEnrichmentWorker(queueSize int, logger *zap.Logger) *EnrichmentWorker {
	return &EnrichmentWorker{
		BaseWorker: NewBaseWorker("enrichment-worker", logger),
		jobs:       make(chan usecase.EnrichJob, queueSize),
	}
}

// Enqueue offers a batch to the queue without blocking.
func (w *EnrichmentWorker) Enqueue(job usecase.EnrichJob) bool {
	select {
	case w.jobs <- job:
		return true
	default:
		return false
	}
}

// Start drains the queue until the context ends or Stop is called.
func (w *EnrichmentWorker) Start(ctx context.Context) error {
	w.Logger().Info("Enrichment worker started",
		zap.Int("queue_capacity", cap(w.jobs)))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.StopChan():
			return nil
		case job := <-w.jobs:
			job.Index.EnrichMetadata(ctx, job.Places)
		}
	}
}
