package consumers

import (
	"log"

	"ledger-service/internal/services"
)

// ReconcileProcessor runs reconciliation work dequeued by the asynq worker.
type ReconcileProcessor struct {
	Commission *services.CommissionService
}

func NewReconcileProcessor(commission *services.CommissionService) *ReconcileProcessor {
	return &ReconcileProcessor{Commission: commission}
}

func (p *ReconcileProcessor) ProcessReconcileEntity(entityID int) error {
	if err := p.Commission.SyncBuyerCommission(entityID); err != nil {
		log.Printf("Reconcile entity %d failed: %v", entityID, err)
		return err
	}
	return nil
}

func (p *ReconcileProcessor) ProcessAuditSweep() error {
	if err := p.Commission.SyncAll(); err != nil {
		log.Printf("Audit sweep failed: %v", err)
		return err
	}
	log.Println("Audit sweep completed")
	return nil
}
