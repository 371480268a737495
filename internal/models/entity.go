package models

import (
	"time"
)

// Entity is one auction session. BuyerName is free text matched against
// client names; BuyerID is the denormalized resolution written back by the
// last reconciliation pass so lookups stay O(1) while the name remains the
// operative link.
type Entity struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;size:255;not null" json:"name"`
	BuyerName   string    `gorm:"column:buyer_name;size:255" json:"buyer_name"`
	BuyerID     *int      `gorm:"column:buyer_id;index" json:"buyer_id"`
	AuctionDate time.Time `gorm:"column:auction_date;not null" json:"auction_date"`
	Lots        []Lot     `gorm:"foreignKey:EntityID" json:"lots,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Entity) TableName() string {
	return "entities"
}
