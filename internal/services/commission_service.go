package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ledger-service/internal/ledger"
	"ledger-service/internal/models"
	"ledger-service/pkg/common"
)

// CommissionService keeps the derived commission row of every entity
// consistent with its buyer and active lots. All writes of one pass go
// through a single database transaction, so a failed pass leaves no
// half-migrated state behind.
type CommissionService struct {
	DB *gorm.DB
}

func NewCommissionService(db *gorm.DB) *CommissionService {
	return &CommissionService{DB: db}
}

// SyncBuyerCommission re-derives the commission transaction for one entity.
// Called after every lot mutation, every entity buyer/date change, and by
// the nightly audit sweep. The whole pass, reads included, runs inside one
// transaction holding a FOR UPDATE lock on the entity row, so concurrent
// passes for the same entity serialize instead of both planning a create.
func (s *CommissionService) SyncBuyerCommission(entityID int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var entity models.Entity
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Lots").
			First(&entity, entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("entity %d: %w", entityID, common.ErrNotFound)
			}
			return err
		}

		var clients []models.Client
		if err := tx.Preload("Transactions").
			Where("namespace = ?", models.NamespaceAdvances).
			Order("id").
			Find(&clients).Error; err != nil {
			return err
		}

		for _, action := range ledger.PlanCommission(entity, clients) {
			if err := s.apply(tx, &entity, action); err != nil {
				return err
			}
		}
		return s.resolveBuyerID(tx, &entity)
	})
}

func (s *CommissionService) apply(tx *gorm.DB, entity *models.Entity, action ledger.CommissionAction) error {
	switch action.Kind {
	case ledger.ActionUpdateCommission:
		if err := tx.Model(&models.Transaction{}).
			Where("id = ?", action.TransactionID).
			Updates(map[string]interface{}{
				"amount":     action.Amount,
				"notes":      action.Notes,
				"date":       action.Date,
				"is_settled": true,
			}).Error; err != nil {
			return err
		}
		return s.markBuyer(tx, action.ClientID)

	case ledger.ActionRemoveCommission:
		return tx.Delete(&models.Transaction{}, action.TransactionID).Error

	case ledger.ActionCreateCommission:
		trx := models.Transaction{
			ClientID:  action.ClientID,
			Reference: uuid.NewString(),
			EntityID:  &entity.ID,
			Amount:    action.Amount,
			Notes:     action.Notes,
			Date:      action.Date,
			IsSettled: true,
			Items:     models.TransactionItems{},
		}
		if err := tx.Create(&trx).Error; err != nil {
			return err
		}
		return s.markBuyer(tx, action.ClientID)

	case ledger.ActionCreateBuyerClient:
		client := models.Client{
			Namespace: models.NamespaceAdvances,
			Name:      action.ClientName,
			IsBuyer:   true,
		}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}
		trx := models.Transaction{
			ClientID:  client.ID,
			Reference: uuid.NewString(),
			EntityID:  &entity.ID,
			Amount:    action.Amount,
			Notes:     action.Notes,
			Date:      action.Date,
			IsSettled: true,
			Items:     models.TransactionItems{},
		}
		return tx.Create(&trx).Error

	default:
		return fmt.Errorf("unknown commission action %d", action.Kind)
	}
}

func (s *CommissionService) markBuyer(tx *gorm.DB, clientID int) error {
	return tx.Model(&models.Client{}).
		Where("id = ?", clientID).
		Update("is_buyer", true).Error
}

// resolveBuyerID writes the buyer-name resolution back onto the entity so
// later lookups do not have to rescan by name. The name stays the operative
// link; this column is derived state like the commission row itself.
func (s *CommissionService) resolveBuyerID(tx *gorm.DB, entity *models.Entity) error {
	if entity.BuyerName == "" {
		return tx.Model(&models.Entity{}).
			Where("id = ?", entity.ID).
			Update("buyer_id", nil).Error
	}

	var buyer models.Client
	err := tx.Where("namespace = ? AND name = ?", models.NamespaceAdvances, entity.BuyerName).
		First(&buyer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Model(&models.Entity{}).
			Where("id = ?", entity.ID).
			Update("buyer_id", nil).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&models.Entity{}).
		Where("id = ?", entity.ID).
		Update("buyer_id", buyer.ID).Error
}

// SyncAll re-runs reconciliation for every entity. Used by the audit sweep
// to repair rows edited out-of-band.
func (s *CommissionService) SyncAll() error {
	var ids []int
	if err := s.DB.Model(&models.Entity{}).Pluck("id", &ids).Error; err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.SyncBuyerCommission(id); err != nil {
			return fmt.Errorf("reconcile entity %d: %w", id, err)
		}
	}
	return nil
}
