package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"ledger-service/internal/ledger"
	"ledger-service/internal/models"
	"ledger-service/pkg/common"
)

// EntityService owns auction sessions and their lots. Every mutation that
// can move the commission base (lot writes, archive toggles, buyer or date
// changes) ends with a reconciliation pass for the touched entity.
type EntityService struct {
	DB         *gorm.DB
	Commission *CommissionService
}

func NewEntityService(db *gorm.DB, commission *CommissionService) *EntityService {
	return &EntityService{DB: db, Commission: commission}
}

type EntityDTO struct {
	Name        string    `json:"name" binding:"required"`
	BuyerName   string    `json:"buyer_name"`
	AuctionDate time.Time `json:"auction_date" binding:"required"`
}

type LotDTO struct {
	LotNumber        string  `json:"lot_number" binding:"required"`
	Name             string  `json:"name"`
	Quantity         float64 `json:"quantity"`
	TotalValue       float64 `json:"total_value" binding:"required"`
	Value30          float64 `json:"value_30"`
	Is70Paid         bool    `json:"is_70_paid"`
	PaymentDetails   string  `json:"payment_details"`
	ContractImageURL string  `json:"contract_image_url"`
}

func (s *EntityService) CreateEntity(data EntityDTO) (*models.Entity, error) {
	entity := models.Entity{
		Name:        data.Name,
		BuyerName:   data.BuyerName,
		AuctionDate: data.AuctionDate,
	}
	if err := s.DB.Create(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (s *EntityService) GetEntity(id int) (*models.Entity, error) {
	var entity models.Entity
	err := s.DB.Preload("Lots").First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("entity %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entity.Lots, func(i, j int) bool {
		return common.CompareLotNumbers(entity.Lots[i].LotNumber, entity.Lots[j].LotNumber) < 0
	})
	return &entity, nil
}

func (s *EntityService) ListEntities() ([]models.Entity, error) {
	var entities []models.Entity
	if err := s.DB.Preload("Lots").Order("auction_date DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// UpdateEntity changes name, buyer, or auction date. Buyer and date both
// feed the commission row, so the entity is reconciled afterwards.
func (s *EntityService) UpdateEntity(id int, data EntityDTO) (*models.Entity, error) {
	entity, err := s.GetEntity(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(entity).Updates(map[string]interface{}{
		"name":         data.Name,
		"buyer_name":   data.BuyerName,
		"auction_date": data.AuctionDate,
	}).Error; err != nil {
		return nil, err
	}
	if err := s.Commission.SyncBuyerCommission(id); err != nil {
		return nil, err
	}
	return s.GetEntity(id)
}

// DeleteEntity removes the session and its lots. The commission row, if any,
// is stripped in the same transaction; an entity that no longer exists can
// never be repaired by the audit sweep, so it must not leave one behind.
func (s *EntityService) DeleteEntity(id int) error {
	entity, err := s.GetEntity(id)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_id = ?", entity.ID).Delete(&models.Lot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("entity_id = ?", entity.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(entity).Error
	})
}

func (s *EntityService) AddLot(entityID int, data LotDTO) (*models.Lot, error) {
	if _, err := s.GetEntity(entityID); err != nil {
		return nil, err
	}
	if data.Value30 > data.TotalValue {
		return nil, fmt.Errorf("30%% part exceeds total value: %w", common.ErrValidation)
	}

	lot := models.Lot{
		EntityID:         entityID,
		LotNumber:        data.LotNumber,
		Name:             data.Name,
		Quantity:         data.Quantity,
		TotalValue:       data.TotalValue,
		Value30:          data.Value30,
		Value70:          data.TotalValue - data.Value30,
		Is70Paid:         data.Is70Paid,
		PaymentDetails:   data.PaymentDetails,
		ContractImageURL: data.ContractImageURL,
	}
	if err := s.DB.Create(&lot).Error; err != nil {
		return nil, err
	}
	if err := s.Commission.SyncBuyerCommission(entityID); err != nil {
		return nil, err
	}
	return &lot, nil
}

func (s *EntityService) UpdateLot(lotID int, data LotDTO) (*models.Lot, error) {
	lot, err := s.getLot(lotID)
	if err != nil {
		return nil, err
	}
	if data.Value30 > data.TotalValue {
		return nil, fmt.Errorf("30%% part exceeds total value: %w", common.ErrValidation)
	}

	lot.LotNumber = data.LotNumber
	lot.Name = data.Name
	lot.Quantity = data.Quantity
	lot.TotalValue = data.TotalValue
	lot.Value30 = data.Value30
	lot.Value70 = data.TotalValue - data.Value30
	lot.Is70Paid = data.Is70Paid
	lot.PaymentDetails = data.PaymentDetails
	lot.ContractImageURL = data.ContractImageURL

	if err := s.DB.Save(lot).Error; err != nil {
		return nil, err
	}
	if err := s.Commission.SyncBuyerCommission(lot.EntityID); err != nil {
		return nil, err
	}
	return lot, nil
}

func (s *EntityService) DeleteLot(lotID int) error {
	lot, err := s.getLot(lotID)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(lot).Error; err != nil {
		return err
	}
	return s.Commission.SyncBuyerCommission(lot.EntityID)
}

// ToggleLotArchive flips the loaded flag and reconciles: the commission
// always reflects the current set of non-archived lots, whichever flow
// archived them.
func (s *EntityService) ToggleLotArchive(lotID int) (*models.Lot, error) {
	lot, err := s.getLot(lotID)
	if err != nil {
		return nil, err
	}
	lot.IsArchived = !lot.IsArchived
	if err := s.DB.Model(lot).Update("is_archived", lot.IsArchived).Error; err != nil {
		return nil, err
	}
	if err := s.Commission.SyncBuyerCommission(lot.EntityID); err != nil {
		return nil, err
	}
	return lot, nil
}

// MarkLotLoaded records loading details and archives the lot in one step.
// Same reconciliation policy as the manual toggle.
func (s *EntityService) MarkLotLoaded(lotID int, loadingDetails string) (*models.Lot, error) {
	lot, err := s.getLot(lotID)
	if err != nil {
		return nil, err
	}
	lot.LoadingDetails = loadingDetails
	lot.IsArchived = true
	if err := s.DB.Model(lot).Updates(map[string]interface{}{
		"loading_details": loadingDetails,
		"is_archived":     true,
	}).Error; err != nil {
		return nil, err
	}
	if err := s.Commission.SyncBuyerCommission(lot.EntityID); err != nil {
		return nil, err
	}
	return lot, nil
}

// Aggregates computes the entity's value totals over active or all lots.
func (s *EntityService) Aggregates(entityID int, activeOnly bool) (ledger.Aggregates, error) {
	entity, err := s.GetEntity(entityID)
	if err != nil {
		return ledger.Aggregates{}, err
	}
	return ledger.EntityAggregates(entity.Lots, activeOnly), nil
}

func (s *EntityService) getLot(id int) (*models.Lot, error) {
	var lot models.Lot
	err := s.DB.First(&lot, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lot %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &lot, nil
}
