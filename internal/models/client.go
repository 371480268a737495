package models

import (
	"time"
)

// Client namespaces. The advances and work ledgers are disjoint: a client id
// belongs to exactly one of them, and commission reconciliation only ever
// touches the advances namespace.
const (
	NamespaceAdvances = "advances"
	NamespaceWork     = "work"
)

type Client struct {
	ID           int           `gorm:"primaryKey;autoIncrement" json:"id"`
	Namespace    string        `gorm:"column:namespace;size:20;not null;index:idx_client_ns_name" json:"namespace"`
	Name         string        `gorm:"column:name;size:255;not null;index:idx_client_ns_name" json:"name"`
	Phone        string        `gorm:"column:phone;size:50" json:"phone"`
	IsBuyer      bool          `gorm:"column:is_buyer;default:false" json:"is_buyer"`
	IsArchived   bool          `gorm:"column:is_archived;default:false" json:"is_archived"`
	ArchiveType  *string       `gorm:"column:archive_type;size:20" json:"archive_type"` // nil unless archived
	Transactions []Transaction `gorm:"foreignKey:ClientID" json:"transactions,omitempty"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}
