package models

// Subscription groups resources under one billing boundary.
type Subscription struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"type:varchar(256);uniqueIndex;not null" json:"name" validate:"required"`
	TenantID *string `gorm:"type:varchar(128)" json:"tenant_id"`
}

func (Subscription) TableName() string { return "subscription" }
