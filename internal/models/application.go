package models

// Application is an owning application associated to resources through
// ResourceApplicationLink rows.
type Application struct {
	ID         int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code       *string `gorm:"type:varchar(64);uniqueIndex" json:"code"`
	Name       *string `gorm:"type:varchar(256)" json:"name"`
	OwnerTeam  *string `gorm:"type:varchar(256)" json:"owner_team"`
	OwnerEmail *string `gorm:"type:varchar(256)" json:"owner_email"`
}

func (Application) TableName() string { return "application" }

// ResourceApplicationLink is the many-to-many "uses" relation between
// resources and applications. The triple is unique together.
type ResourceApplicationLink struct {
	ResourceID    int64  `gorm:"primaryKey;autoIncrement:false" json:"resource_id"`
	ApplicationID int64  `gorm:"primaryKey;autoIncrement:false" json:"application_id"`
	RelationType  string `gorm:"primaryKey;type:varchar(32);default:'uses'" json:"relation_type"`
}

func (ResourceApplicationLink) TableName() string { return "resource_application_map" }
