package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ledger-service/internal/models"
	"ledger-service/pkg/common"
)

// TransactionService handles user-entered ledger rows (purchases and manual
// corrections). Commission rows carry an entity id and belong to the
// reconciliation engine; by convention they are not edited here, though the
// API does not forbid it.
type TransactionService struct {
	DB *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{DB: db}
}

type TransactionDTO struct {
	Amount    float64                 `json:"amount" binding:"required"`
	Notes     string                  `json:"notes"`
	Date      time.Time               `json:"date"`
	IsSettled bool                    `json:"is_settled"`
	Items     models.TransactionItems `json:"items"`
	ImageURL  string                  `json:"image_url"`
}

func (s *TransactionService) AddTransaction(clientID int, data TransactionDTO) (*models.Transaction, error) {
	var client models.Client
	if err := s.DB.First(&client, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %d: %w", clientID, common.ErrNotFound)
		}
		return nil, err
	}

	date := data.Date
	if date.IsZero() {
		date = time.Now()
	}
	items := data.Items
	if items == nil {
		items = models.TransactionItems{}
	}

	trx := models.Transaction{
		ClientID:  client.ID,
		Reference: common.GenerateTrxNo(),
		Amount:    data.Amount,
		Notes:     data.Notes,
		Date:      date,
		IsSettled: data.IsSettled,
		Items:     items,
		ImageURL:  data.ImageURL,
	}
	if err := s.DB.Create(&trx).Error; err != nil {
		return nil, err
	}
	return &trx, nil
}

func (s *TransactionService) UpdateTransaction(id int, data TransactionDTO) (*models.Transaction, error) {
	var trx models.Transaction
	if err := s.DB.First(&trx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
		}
		return nil, err
	}

	trx.Amount = data.Amount
	trx.Notes = data.Notes
	trx.IsSettled = data.IsSettled
	trx.ImageURL = data.ImageURL
	if !data.Date.IsZero() {
		trx.Date = data.Date
	}
	if data.Items != nil {
		trx.Items = data.Items
	}

	if err := s.DB.Save(&trx).Error; err != nil {
		return nil, err
	}
	return &trx, nil
}

func (s *TransactionService) DeleteTransaction(id int) error {
	result := s.DB.Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// GetTransactions returns one client's history, newest first, paginated.
func (s *TransactionService) GetTransactions(clientID, page, limit int) (common.PaginationResult, error) {
	page, limit = common.NormalizePage(page, limit)
	offset := (page - 1) * limit

	query := s.DB.Model(&models.Transaction{}).Where("client_id = ?", clientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var transactions []models.Transaction
	if err := query.Order("date DESC, id DESC").Limit(limit).Offset(offset).
		Find(&transactions).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(transactions, total, page, limit, ""), nil
}
