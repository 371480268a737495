package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"ledger-service/internal/consumers"
)

type Worker struct {
	Processor *consumers.ReconcileProcessor
}

func NewWorker(processor *consumers.ReconcileProcessor) *Worker {
	return &Worker{
		Processor: processor,
	}
}

func (w *Worker) HandleReconcileEntity(ctx context.Context, t *asynq.Task) error {
	var p ReconcileEntityDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	return w.Processor.ProcessReconcileEntity(p.EntityID)
}

func (w *Worker) HandleAuditSweep(ctx context.Context, t *asynq.Task) error {
	return w.Processor.ProcessAuditSweep()
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.ReconcileProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			// One concurrent worker: reconciliation passes for the same
			// entity must not interleave.
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeReconcileEntity, worker.HandleReconcileEntity)
	mux.HandleFunc(TypeAuditSweep, worker.HandleAuditSweep)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
