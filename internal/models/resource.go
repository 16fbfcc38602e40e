package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Resource is a cataloged cloud asset. Tags are persisted twice: as a jsonb
// blob on the row and as discrete ResourceTag rows for indexing.
type Resource struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID       *string        `gorm:"column:azure_id;type:varchar(512);index" json:"azure_id"`
	Name             string         `gorm:"type:varchar(256);index;not null" json:"name" validate:"required"`
	Type             string         `gorm:"type:varchar(128);index;not null" json:"resource_type" validate:"required"`
	Kind             *string        `gorm:"type:varchar(64)" json:"kind"`
	Location         string         `gorm:"type:varchar(64);index;not null" json:"location" validate:"required"`
	SubscriptionID   int64          `gorm:"index;not null" json:"subscription_id" validate:"required"`
	ResourceGroupID  int64          `gorm:"index;not null" json:"resource_group_id" validate:"required"`
	TagsJSON         datatypes.JSON `gorm:"column:tags_json;type:jsonb" json:"tags_json"`
	ExtendedLocation *string        `gorm:"type:varchar(128)" json:"extended_location"`
	Vendor           *string        `gorm:"type:varchar(64);index" json:"vendor"`
	Environment      *string        `gorm:"type:varchar(64);index" json:"environment"`
	Provisioner      *string        `gorm:"type:varchar(64)" json:"provisioner"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Resource) TableName() string { return "resource" }

// TagMap decodes the jsonb tag blob into a flat string map. The second return
// is false when the blob is absent or not a flat string object; callers skip
// such resources rather than failing.
func (r *Resource) TagMap() (map[string]string, bool) {
	if len(r.TagsJSON) == 0 {
		return nil, false
	}
	var tags map[string]string
	if err := json.Unmarshal(r.TagsJSON, &tags); err != nil {
		return nil, false
	}
	return tags, true
}

// SetTags encodes a tag map into the jsonb blob.
func (r *Resource) SetTags(tags map[string]string) error {
	if tags == nil {
		tags = map[string]string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	r.TagsJSON = datatypes.JSON(b)
	return nil
}

// ResourceTag mirrors one tag pair of a resource as a discrete row.
type ResourceTag struct {
	ResourceID int64   `gorm:"primaryKey;autoIncrement:false" json:"resource_id"`
	Key        string  `gorm:"primaryKey;type:varchar(128)" json:"key"`
	Value      *string `gorm:"type:varchar(512)" json:"value"`
}

func (ResourceTag) TableName() string { return "resource_tag" }
