package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ledger-service/internal/ledger"
	"ledger-service/internal/models"
	"ledger-service/pkg/common"
)

type ClientService struct {
	DB *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{DB: db}
}

type CreateClientDTO struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

type UpdateClientDTO struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// ClientSummary is a list row: the client plus its derived balance. Balance
// is never stored; it is recomputed from the transaction list on every read.
type ClientSummary struct {
	models.Client
	Balance float64 `json:"balance"`
}

func (s *ClientService) CreateClient(namespace string, data CreateClientDTO) (*models.Client, error) {
	if data.Name == "" {
		return nil, fmt.Errorf("client name is required: %w", common.ErrValidation)
	}
	client := models.Client{
		Namespace: namespace,
		Name:      data.Name,
		Phone:     data.Phone,
	}
	if err := s.DB.Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *ClientService) GetClient(namespace string, id int) (*models.Client, error) {
	var client models.Client
	err := s.DB.Preload("Transactions", func(db *gorm.DB) *gorm.DB {
		return db.Order("date ASC, id ASC")
	}).Where("namespace = ?", namespace).First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("client %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// FindClient loads a client without its transactions. Callers use it to
// confirm a client exists in the namespace before touching its ledger.
func (s *ClientService) FindClient(namespace string, id int) (*models.Client, error) {
	var client models.Client
	err := s.DB.Where("namespace = ?", namespace).First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("client %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// ListClients returns the namespace's clients with their computed balances,
// archived or active depending on the flag.
func (s *ClientService) ListClients(namespace string, archived bool) ([]ClientSummary, error) {
	var clients []models.Client
	if err := s.DB.Preload("Transactions").
		Where("namespace = ? AND is_archived = ?", namespace, archived).
		Order("name").
		Find(&clients).Error; err != nil {
		return nil, err
	}

	summaries := make([]ClientSummary, 0, len(clients))
	for _, client := range clients {
		summaries = append(summaries, ClientSummary{
			Client:  client,
			Balance: ledger.ClientBalance(client.Transactions),
		})
	}
	return summaries, nil
}

func (s *ClientService) UpdateClient(namespace string, id int, data UpdateClientDTO) (*models.Client, error) {
	client, err := s.GetClient(namespace, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if data.Name != nil {
		if *data.Name == "" {
			return nil, fmt.Errorf("client name cannot be empty: %w", common.ErrValidation)
		}
		updates["name"] = *data.Name
	}
	if data.Phone != nil {
		updates["phone"] = *data.Phone
	}
	if len(updates) == 0 {
		return client, nil
	}
	if err := s.DB.Model(client).Updates(updates).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) DeleteClient(namespace string, id int) error {
	client, err := s.GetClient(namespace, id)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", client.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(client).Error
	})
}

// SettleAndArchive zeroes the client's balance with a final balancing
// transaction and moves it to the archive bucket of its own namespace.
func (s *ClientService) SettleAndArchive(namespace string, id int) (*models.Client, error) {
	client, err := s.GetClient(namespace, id)
	if err != nil {
		return nil, err
	}

	total := ledger.ClientBalance(client.Transactions)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		settlement := models.Transaction{
			ClientID:  client.ID,
			Reference: common.GenerateTrxNo(),
			Amount:    -total,
			Notes:     "تسوية نهائية",
			Date:      time.Now(),
			IsSettled: true,
			Items:     models.TransactionItems{},
		}
		if err := tx.Create(&settlement).Error; err != nil {
			return err
		}
		return tx.Model(client).Updates(map[string]interface{}{
			"is_archived":  true,
			"archive_type": client.Namespace,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetClient(namespace, id)
}

// RestoreClient brings an archived client back. The archive type is cleared
// to NULL, not zeroed; transactions are untouched.
func (s *ClientService) RestoreClient(namespace string, id int) (*models.Client, error) {
	client, err := s.GetClient(namespace, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(client).Updates(map[string]interface{}{
		"is_archived":  false,
		"archive_type": nil,
	}).Error; err != nil {
		return nil, err
	}
	return s.GetClient(namespace, id)
}
