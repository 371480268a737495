package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// TransactionItem is a line item attached to a purchase transaction.
type TransactionItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// TransactionItems is stored as a JSON column.
type TransactionItems []TransactionItem

func (items TransactionItems) Value() (driver.Value, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (items *TransactionItems) Scan(value interface{}) error {
	if value == nil {
		*items = TransactionItems{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for TransactionItems")
	}
	if len(data) == 0 {
		*items = TransactionItems{}
		return nil
	}
	return json.Unmarshal(data, items)
}

// Transaction is one ledger entry on a client. Sign convention: positive
// amount is a debit (the client owes it), negative is a credit (a payment or
// commission deducted at settlement). A non-nil EntityID marks a
// system-generated commission row owned by the reconciliation engine.
type Transaction struct {
	ID        int              `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID  int              `gorm:"column:client_id;not null;index" json:"client_id"`
	Reference string           `gorm:"column:reference;size:64;not null;index" json:"reference"`
	Amount    float64          `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Notes     string           `gorm:"column:notes;type:text" json:"notes"`
	Date      time.Time        `gorm:"column:date;not null" json:"date"`
	IsSettled bool             `gorm:"column:is_settled;default:false" json:"is_settled"`
	EntityID  *int             `gorm:"column:entity_id;index" json:"entity_id"`
	Items     TransactionItems `gorm:"column:items;type:json" json:"items"`
	ImageURL  string           `gorm:"column:image_url;size:512" json:"image_url"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
