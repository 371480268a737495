package worker

// Task Types
const (
	TypeReconcileEntity = "commission:reconcile"
	TypeAuditSweep      = "commission:audit-sweep"
)

type ReconcileEntityDTO struct {
	EntityID int `json:"entity_id"`
}
