// Package ledger holds the pure balance and commission rules. Nothing in
// this package touches the database; services load state, call in here, and
// persist the result.
package ledger

import (
	"ledger-service/internal/models"
)

// ClientBalance sums the signed amounts of a client's transactions. A result
// >= 0 is a debit (the client owes), < 0 a credit; display uses the
// magnitude with the matching label.
func ClientBalance(transactions []models.Transaction) float64 {
	var total float64
	for _, t := range transactions {
		total += t.Amount
	}
	return total
}

type Aggregates struct {
	TotalValue  float64 `json:"total_value"`
	Total30     float64 `json:"total_30"`
	Total70     float64 `json:"total_70"`
	Remaining70 float64 `json:"remaining_70"`
}

// EntityAggregates totals an entity's lots. With activeOnly, archived
// (loaded) lots are skipped; Remaining70 additionally skips lots whose 70%
// part is already paid.
func EntityAggregates(lots []models.Lot, activeOnly bool) Aggregates {
	var agg Aggregates
	for _, lot := range lots {
		if activeOnly && lot.IsArchived {
			continue
		}
		agg.TotalValue += lot.TotalValue
		agg.Total30 += lot.Value30
		agg.Total70 += lot.Value70
		if !lot.Is70Paid {
			agg.Remaining70 += lot.Value70
		}
	}
	return agg
}
