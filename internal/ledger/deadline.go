package ledger

import (
	"time"

	"ledger-service/internal/models"
	"ledger-service/pkg/common"
)

// The 70% remainder falls due this many days after the auction.
const DeadlineDays = 15

// Deadlines at most this many days away are flagged as pending.
const PendingWindowDays = 5

type DeadlineStatus string

const (
	StatusOverdue  DeadlineStatus = "overdue"
	StatusPending  DeadlineStatus = "pending"
	StatusUpcoming DeadlineStatus = "upcoming"
)

type DeadlineInfo struct {
	EntityID   int            `json:"entity_id"`
	EntityName string         `json:"entity_name"`
	Lot        models.Lot     `json:"lot"`
	Deadline   time.Time      `json:"deadline"`
	Status     DeadlineStatus `json:"status"`
}

// UpcomingDeadline picks the unpaid lot with the earliest payment deadline
// across all entities. Deadlines already in the past are kept and flagged
// overdue rather than dropped, so overdue items stay visible on the
// dashboard. Returns nil when every lot is paid.
func UpcomingDeadline(entities []models.Entity, now time.Time) *DeadlineInfo {
	var best *DeadlineInfo
	for _, entity := range entities {
		deadline := entity.AuctionDate.AddDate(0, 0, DeadlineDays)
		for _, lot := range entity.Lots {
			if lot.Is70Paid {
				continue
			}
			if best != nil && !deadline.Before(best.Deadline) {
				continue
			}
			best = &DeadlineInfo{
				EntityID:   entity.ID,
				EntityName: entity.Name,
				Lot:        lot,
				Deadline:   deadline,
				Status:     deadlineStatus(deadline, now),
			}
		}
	}
	return best
}

func deadlineStatus(deadline time.Time, now time.Time) DeadlineStatus {
	days := common.DaysUntil(deadline, now)
	switch {
	case days < 0:
		return StatusOverdue
	case days <= PendingWindowDays:
		return StatusPending
	default:
		return StatusUpcoming
	}
}
