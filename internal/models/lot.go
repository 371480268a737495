package models

import (
	"time"
)

// Lot is one purchased batch inside an entity, paid in a 30%/70% split.
// Value70 = TotalValue - Value30 is enforced when the lot is written.
// IsArchived means loaded/shipped; archived lots drop out of the commission
// base and the active aggregates.
type Lot struct {
	ID               int       `gorm:"primaryKey;autoIncrement" json:"id"`
	EntityID         int       `gorm:"column:entity_id;not null;index" json:"entity_id"`
	LotNumber        string    `gorm:"column:lot_number;size:50;not null" json:"lot_number"`
	Name             string    `gorm:"column:name;size:255" json:"name"`
	Quantity         float64   `gorm:"column:quantity;type:decimal(20,2);default:0.00" json:"quantity"`
	TotalValue       float64   `gorm:"column:total_value;type:decimal(20,2);not null" json:"total_value"`
	Value30          float64   `gorm:"column:value_30;type:decimal(20,2);not null" json:"value_30"`
	Value70          float64   `gorm:"column:value_70;type:decimal(20,2);not null" json:"value_70"`
	Is70Paid         bool      `gorm:"column:is_70_paid;default:false" json:"is_70_paid"`
	PaymentDetails   string    `gorm:"column:payment_details;type:text" json:"payment_details"`
	LoadingDetails   string    `gorm:"column:loading_details;type:text" json:"loading_details"`
	ContractImageURL string    `gorm:"column:contract_image_url;size:512" json:"contract_image_url"`
	IsArchived       bool      `gorm:"column:is_archived;default:false" json:"is_archived"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Lot) TableName() string {
	return "lots"
}
