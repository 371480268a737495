package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"ledger-service/internal/models"
	"ledger-service/pkg/common"
)

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

type PaymentDTO struct {
	Amount              float64   `json:"amount" binding:"required"`
	Notes               string    `json:"notes"`
	Date                time.Time `json:"date"`
	LinkedTransactionID *int      `json:"linked_transaction_id"`
}

// AddPayment records a payment against a client. Payments are always
// credits: the stored amount is -abs(input) whatever sign the caller sends.
// A linked purchase transaction gets its settled flag forced on; its amount
// is untouched and no amount matching is attempted.
func (s *PaymentService) AddPayment(clientID int, data PaymentDTO) (*models.Transaction, error) {
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

	payment := models.Transaction{
		ClientID:  client.ID,
		Reference: common.GenerateTrxNo(),
		Amount:    -math.Abs(data.Amount),
		Notes:     data.Notes,
		Date:      date,
		IsSettled: true,
		Items:     models.TransactionItems{},
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if data.LinkedTransactionID == nil {
			return nil
		}
		var linked models.Transaction
		err := tx.Where("id = ? AND client_id = ?", *data.LinkedTransactionID, client.ID).
			First(&linked).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("linked transaction %d: %w", *data.LinkedTransactionID, common.ErrNotFound)
		}
		if err != nil {
			return err
		}
		return tx.Model(&linked).Update("is_settled", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
