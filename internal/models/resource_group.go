package models

// ResourceGroup is a named container of resources inside a subscription.
// Name is unique per subscription, not globally.
type ResourceGroup struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string `gorm:"type:varchar(256);not null;index:idx_resource_group_sub_name,unique" json:"name" validate:"required"`
	SubscriptionID int64  `gorm:"not null;index:idx_resource_group_sub_name,unique" json:"subscription_id" validate:"required"`
}

func (ResourceGroup) TableName() string { return "resource_group" }
