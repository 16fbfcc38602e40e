package repository

import (
	"context"
	"fmt"

	"github.com/techstock/engine/internal/models"
	"github.com/techstock/engine/internal/query"
	appErr "github.com/techstock/engine/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Bucket is one grouped count, ordered by count descending.
type Bucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type ResourceRepository interface {
	BaseRepository[models.Resource]

	// List executes a compiled descriptor and returns one page plus the total
	// row count for the same predicate.
	List(ctx context.Context, d query.Descriptor) ([]models.Resource, int64, error)
	// ListAll returns the full catalog, bounded by query.MaxSize rows.
	ListAll(ctx context.Context) ([]models.Resource, error)
	ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.Resource, error)
	ListByResourceGroup(ctx context.Context, resourceGroupID int64) ([]models.Resource, error)
	ListByApplication(ctx context.Context, applicationID int64) ([]models.Resource, error)

	CountByType(ctx context.Context, scope query.Scope) ([]Bucket, error)
	CountByLocation(ctx context.Context, scope query.Scope) ([]Bucket, error)
	CountByEnvironment(ctx context.Context, scope query.Scope) ([]Bucket, error)
	Count(ctx context.Context) (int64, error)

	// UpsertTags mirrors the resource's tag map into resource_tag rows.
	UpsertTags(ctx context.Context, resourceID int64, tags map[string]string) error
}

type resourceRepository struct {
	BaseRepository[models.Resource]
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{BaseRepository: NewBaseRepository[models.Resource](db), db: db}
}

// filtered builds a fresh query applying every predicate of the descriptor.
// Count and page both go through here so total can never drift from the page
// (values are always bound, never interpolated).
func (r *resourceRepository) filtered(ctx context.Context, d query.Descriptor) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&models.Resource{})

	if d.TypeContains != "" {
		db = db.Where("type ILIKE ?", "%"+d.TypeContains+"%")
	}
	if d.Location != "" {
		db = db.Where("location = ?", d.Location)
	}
	if d.Environment != "" {
		db = db.Where("environment = ?", d.Environment)
	}
	if d.Vendor != "" {
		db = db.Where("vendor = ?", d.Vendor)
	}
	if d.SubscriptionID != nil {
		db = db.Where("subscription_id = ?", *d.SubscriptionID)
	}
	if d.ResourceGroupID != nil {
		db = db.Where("resource_group_id = ?", *d.ResourceGroupID)
	}
	if d.Search != "" {
		p := "%" + d.Search + "%"
		db = db.Where(
			"name ILIKE ? OR type ILIKE ? OR azure_id ILIKE ? OR location ILIKE ? OR vendor ILIKE ? OR environment ILIKE ?",
			p, p, p, p, p, p,
		)
	}
	if len(d.Tags) > 0 {
		or := r.db.Where("tags_json ->> ? ILIKE ?", d.Tags[0].Key, "%"+d.Tags[0].Value+"%")
		for _, t := range d.Tags[1:] {
			or = or.Or("tags_json ->> ? ILIKE ?", t.Key, "%"+t.Value+"%")
		}
		db = db.Where(or)
	}
	return db
}

func (r *resourceRepository) List(ctx context.Context, d query.Descriptor) ([]models.Resource, int64, error) {
	var total int64
	if err := r.filtered(ctx, d).Count(&total).Error; err != nil {
		return nil, 0, appErr.Database(err, "count resources failed")
	}

	q := r.filtered(ctx, d)
	if d.Relevance {
		// Bucket by name relevance first; the requested ordering breaks ties
		// within a bucket. SortColumn is vetted by the compiler, search terms
		// stay bound.
		term := d.Search
		dir := "ASC"
		if d.SortDesc {
			dir = "DESC"
		}
		q = q.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL: fmt.Sprintf(
				"CASE WHEN LOWER(name) = LOWER(?) THEN 1 WHEN name ILIKE ? THEN 2 WHEN name ILIKE ? THEN 3 ELSE 4 END, %s %s",
				d.SortColumn, dir,
			),
			Vars:               []interface{}{term, term + "%", "%" + term + "%"},
			WithoutParentheses: true,
		}})
	} else {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: d.SortColumn}, Desc: d.SortDesc})
	}

	var out []models.Resource
	if err := q.Offset(d.Offset).Limit(d.Limit).Find(&out).Error; err != nil {
		return nil, 0, appErr.Database(err, "list resources failed")
	}
	return out, total, nil
}

func (r *resourceRepository) ListAll(ctx context.Context) ([]models.Resource, error) {
	var out []models.Resource
	err := r.db.WithContext(ctx).Order("id").Limit(query.MaxSize).Find(&out).Error
	if err != nil {
		return nil, appErr.Database(err, "list all resources failed")
	}
	return out, nil
}

func (r *resourceRepository) ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.Resource, error) {
	var out []models.Resource
	err := r.db.WithContext(ctx).Where("subscription_id = ?", subscriptionID).Find(&out).Error
	if err != nil {
		return nil, appErr.Database(err, "list resources by subscription failed")
	}
	return out, nil
}

func (r *resourceRepository) ListByResourceGroup(ctx context.Context, resourceGroupID int64) ([]models.Resource, error) {
	var out []models.Resource
	err := r.db.WithContext(ctx).Where("resource_group_id = ?", resourceGroupID).Find(&out).Error
	if err != nil {
		return nil, appErr.Database(err, "list resources by resource group failed")
	}
	return out, nil
}

func (r *resourceRepository) ListByApplication(ctx context.Context, applicationID int64) ([]models.Resource, error) {
	var out []models.Resource
	err := r.db.WithContext(ctx).
		Joins("JOIN resource_application_map ram ON ram.resource_id = resource.id").
		Where("ram.application_id = ?", applicationID).
		Find(&out).Error
	if err != nil {
		return nil, appErr.Database(err, "list resources by application failed")
	}
	return out, nil
}

// scoped applies dashboard scope filters for the grouped counts.
func (r *resourceRepository) scoped(ctx context.Context, scope query.Scope) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&models.Resource{})
	if scope.SubscriptionID != nil {
		db = db.Where("subscription_id = ?", *scope.SubscriptionID)
	}
	if scope.ResourceGroupID != nil {
		db = db.Where("resource_group_id = ?", *scope.ResourceGroupID)
	}
	if scope.Location != nil {
		db = db.Where("location = ?", *scope.Location)
	}
	if scope.Environment != nil {
		db = db.Where("environment = ?", *scope.Environment)
	}
	return db
}

func (r *resourceRepository) CountByType(ctx context.Context, scope query.Scope) ([]Bucket, error) {
	var out []Bucket
	err := r.scoped(ctx, scope).
		Select("type AS label, COUNT(*) AS count").
		Group("type").Order("count DESC").
		Scan(&out).Error
	if err != nil {
		return nil, appErr.Database(err, "count resources by type failed")
	}
	return out, nil
}

func (r *resourceRepository) CountByLocation(ctx context.Context, scope query.Scope) ([]Bucket, error) {
	var out []Bucket
	err := r.scoped(ctx, scope).
		Select("location AS label, COUNT(*) AS count").
		Group("location").Order("count DESC").
		Scan(&out).Error
	if err != nil {
		return nil, appErr.Database(err, "count resources by location failed")
	}
	return out, nil
}

func (r *resourceRepository) CountByEnvironment(ctx context.Context, scope query.Scope) ([]Bucket, error) {
	var out []Bucket
	err := r.scoped(ctx, scope).
		Select("COALESCE(environment, 'Unknown') AS label, COUNT(*) AS count").
		Group("environment").Order("count DESC").
		Scan(&out).Error
	if err != nil {
		return nil, appErr.Database(err, "count resources by environment failed")
	}
	return out, nil
}

func (r *resourceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Resource{}).Count(&n).Error; err != nil {
		return 0, appErr.Database(err, "count resources failed")
	}
	return n, nil
}

func (r *resourceRepository) UpsertTags(ctx context.Context, resourceID int64, tags map[string]string) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]models.ResourceTag, 0, len(tags))
	for k, v := range tags {
		value := v
		rows = append(rows, models.ResourceTag{ResourceID: resourceID, Key: k, Value: &value})
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "resource_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rows).Error
	if err != nil {
		return appErr.Database(err, "upsert resource tags failed")
	}
	return nil
}
