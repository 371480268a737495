package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"ledger-service/internal/models"
)

// Mirror the worker task types; duplicated to keep this package off the
// worker import path.
const (
	TypeReconcileEntity = "commission:reconcile"
	TypeAuditSweep      = "commission:audit-sweep"
)

// AuditService enqueues a reconciliation task per entity so the worker can
// repair commission rows that drifted (e.g. edited through the manual
// transaction flow). Task ids carry the entity id, so a pending task for an
// entity is not enqueued twice.
type AuditService struct {
	DB    *gorm.DB
	Queue *asynq.Client
}

func NewAuditService(db *gorm.DB, queue *asynq.Client) *AuditService {
	return &AuditService{DB: db, Queue: queue}
}

// EnqueueSweep queues one reconciliation task for every entity.
func (s *AuditService) EnqueueSweep() {
	var ids []int
	if err := s.DB.Model(&models.Entity{}).Pluck("id", &ids).Error; err != nil {
		log.Printf("Audit sweep: could not list entities: %v", err)
		return
	}

	for _, id := range ids {
		payload, err := json.Marshal(map[string]int{"entity_id": id})
		if err != nil {
			log.Printf("Audit sweep: could not build task for entity %d: %v", id, err)
			continue
		}
		task := asynq.NewTask(TypeReconcileEntity, payload)
		taskID := asynq.TaskID(fmt.Sprintf("reconcile-entity-%d", id))
		if _, err := s.Queue.Enqueue(task, taskID); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
			log.Printf("Audit sweep: could not enqueue entity %d: %v", id, err)
		}
	}
	log.Printf("Audit sweep: enqueued %d entities", len(ids))
}

// EnqueueFullSweep queues a single task that reconciles every entity in one
// worker pass. Used by the manual audit endpoint; a sweep already waiting in
// the queue is not enqueued twice.
func (s *AuditService) EnqueueFullSweep() error {
	task := asynq.NewTask(TypeAuditSweep, nil)
	_, err := s.Queue.Enqueue(task, asynq.TaskID("audit-sweep"))
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return err
	}
	return nil
}

// StartScheduler runs the sweep nightly at 02:00.
func (s *AuditService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 2 * * *", func() {
		log.Println("Running scheduled commission audit sweep...")
		s.EnqueueSweep()
	})
	if err != nil {
		log.Printf("Error scheduling audit sweep: %v", err)
		return
	}
	c.Start()
	log.Println("Commission Audit Scheduler started (Daily at 02:00)")
}
