package ledger

import (
	"fmt"
	"time"

	"ledger-service/internal/models"
	"ledger-service/pkg/common"
)

// CommissionRate is the broker's cut of an entity's active lot value.
const CommissionRate = 0.005

type ActionKind int

const (
	// ActionUpdateCommission rewrites the commission row already sitting on
	// the current buyer.
	ActionUpdateCommission ActionKind = iota
	// ActionRemoveCommission deletes a commission row, either because the
	// commission dropped to zero or because the row sits on a stale buyer.
	ActionRemoveCommission
	// ActionCreateCommission appends a new commission row to an existing
	// client.
	ActionCreateCommission
	// ActionCreateBuyerClient creates the buyer in the advances namespace
	// together with its first commission row.
	ActionCreateBuyerClient
)

// CommissionAction is one persisted effect of a reconciliation pass. The
// applier runs the whole slice inside a single database transaction.
type CommissionAction struct {
	Kind          ActionKind
	ClientID      int     // target client; zero for ActionCreateBuyerClient
	ClientName    string  // buyer name, set on create actions
	TransactionID int     // existing commission row, set on update/remove
	Amount        float64 // stored amount, always -commission
	Notes         string
	Date          time.Time
}

// CommissionAmount computes the commission over an entity's non-archived
// lots. Archived lots are shipped; their value no longer accrues commission.
func CommissionAmount(lots []models.Lot) float64 {
	var base float64
	for _, lot := range lots {
		if lot.IsArchived {
			continue
		}
		base += lot.TotalValue
	}
	return CommissionRate * base
}

// CommissionNote is the notes text stored on commission rows. It embeds the
// formatted auction date, so it is stable for a given entity state.
func CommissionNote(auctionDate time.Time) string {
	return fmt.Sprintf("عمولة 0.5%% عن جلسة بتاريخ %s", common.FormatDate(auctionDate))
}

// PlanCommission reconciles one entity against the advances-namespace
// clients and returns the actions that restore the invariant: at most one
// commission row exists for the entity, on the client whose name equals the
// entity's buyer, carrying -0.5% of the active lot value.
//
// The scan mirrors the mutation rules exactly: a row found on the current
// buyer is updated (or removed when the commission is zero) and ends the
// pass; rows found on any other client are stale and are all stripped in the
// same pass. A client carrying more than one row for the entity keeps at
// most the first; the extras are stripped, so a sweep repairs duplicates
// however they got in. Only when no row ended up on the current buyer is a
// new one created, on the existing buyer client or on a brand-new one. An
// empty buyer name never creates anything.
func PlanCommission(entity models.Entity, clients []models.Client) []CommissionAction {
	commission := CommissionAmount(entity.Lots)
	note := CommissionNote(entity.AuctionDate)

	var actions []CommissionAction
	for _, client := range clients {
		rows := commissionRows(client.Transactions, entity.ID)
		if len(rows) == 0 {
			continue
		}
		if client.Name != entity.BuyerName {
			// Buyer changed since the last pass. Strip and keep scanning so
			// duplicate stale rows all go in one pass.
			for _, trx := range rows {
				actions = append(actions, CommissionAction{
					Kind:          ActionRemoveCommission,
					ClientID:      client.ID,
					TransactionID: trx.ID,
				})
			}
			continue
		}
		if commission > 0 {
			actions = append(actions, CommissionAction{
				Kind:          ActionUpdateCommission,
				ClientID:      client.ID,
				ClientName:    client.Name,
				TransactionID: rows[0].ID,
				Amount:        -commission,
				Notes:         note,
				Date:          entity.AuctionDate,
			})
			for _, trx := range rows[1:] {
				actions = append(actions, CommissionAction{
					Kind:          ActionRemoveCommission,
					ClientID:      client.ID,
					TransactionID: trx.ID,
				})
			}
		} else {
			for _, trx := range rows {
				actions = append(actions, CommissionAction{
					Kind:          ActionRemoveCommission,
					ClientID:      client.ID,
					TransactionID: trx.ID,
				})
			}
		}
		return actions
	}

	if commission <= 0 || entity.BuyerName == "" {
		return actions
	}

	for _, client := range clients {
		if client.Name == entity.BuyerName {
			actions = append(actions, CommissionAction{
				Kind:       ActionCreateCommission,
				ClientID:   client.ID,
				ClientName: client.Name,
				Amount:     -commission,
				Notes:      note,
				Date:       entity.AuctionDate,
			})
			return actions
		}
	}

	actions = append(actions, CommissionAction{
		Kind:       ActionCreateBuyerClient,
		ClientName: entity.BuyerName,
		Amount:     -commission,
		Notes:      note,
		Date:       entity.AuctionDate,
	})
	return actions
}

func commissionRows(transactions []models.Transaction, entityID int) []models.Transaction {
	var rows []models.Transaction
	for _, t := range transactions {
		if t.EntityID != nil && *t.EntityID == entityID {
			rows = append(rows, t)
		}
	}
	return rows
}
