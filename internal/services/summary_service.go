package services

import (
	"time"

	"gorm.io/gorm"

	"ledger-service/internal/ledger"
	"ledger-service/internal/models"
	"ledger-service/pkg/common"
)

// SummaryService feeds the dashboard: per-namespace ledger totals and the
// next-payment-due card.
type SummaryService struct {
	DB *gorm.DB
}

func NewSummaryService(db *gorm.DB) *SummaryService {
	return &SummaryService{DB: db}
}

type NamespaceTotals struct {
	Namespace       string  `json:"namespace"`
	ClientCount     int     `json:"client_count"`
	TotalDebit      float64 `json:"total_debit"`
	TotalCredit     float64 `json:"total_credit"`
	FormattedDebit  string  `json:"formatted_debit"`
	FormattedCredit string  `json:"formatted_credit"`
}

// Totals sums client balances across a namespace. Debit collects the
// positive balances (owed to the business), credit the magnitude of the
// negative ones.
func (s *SummaryService) Totals(namespace string) (NamespaceTotals, error) {
	var clients []models.Client
	if err := s.DB.Preload("Transactions").
		Where("namespace = ? AND is_archived = ?", namespace, false).
		Find(&clients).Error; err != nil {
		return NamespaceTotals{}, err
	}

	totals := NamespaceTotals{Namespace: namespace, ClientCount: len(clients)}
	for _, client := range clients {
		balance := ledger.ClientBalance(client.Transactions)
		if balance >= 0 {
			totals.TotalDebit += balance
		} else {
			totals.TotalCredit += -balance
		}
	}
	totals.FormattedDebit = common.FormatCurrency(totals.TotalDebit)
	totals.FormattedCredit = common.FormatCurrency(totals.TotalCredit)
	return totals, nil
}

// NextDeadline returns the next-payment-due card, or nil when nothing is
// outstanding.
func (s *SummaryService) NextDeadline() (*ledger.DeadlineInfo, error) {
	var entities []models.Entity
	if err := s.DB.Preload("Lots").Find(&entities).Error; err != nil {
		return nil, err
	}
	return ledger.UpcomingDeadline(entities, time.Now()), nil
}
