package main

import (
	"gorm.io/gorm"

	"github.com/techstock/engine/internal/models"
)

// registerModels returns all models that need migration. Order matters:
// referenced tables first.
func registerModels() []interface{} {
	return []interface{}{
		&models.Subscription{},
		&models.ResourceGroup{},
		&models.Application{},
		&models.Resource{},
		&models.ResourceTag{},
		&models.ResourceApplicationLink{},
	}
}

// runMigrations executes all database migrations
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addResourceFilterIndexes,
		addResourceTagKeyIndex,
	}

	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}

	return nil
}

// addResourceFilterIndexes backs the list and dashboard predicates.
func addResourceFilterIndexes(db *gorm.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_resource_type ON resource(type)`,
		`CREATE INDEX IF NOT EXISTS idx_resource_location ON resource(location)`,
		`CREATE INDEX IF NOT EXISTS idx_resource_environment ON resource(environment)`,
		`CREATE INDEX IF NOT EXISTS idx_resource_subscription ON resource(subscription_id)`,
		`CREATE INDEX IF NOT EXISTS idx_resource_group ON resource(resource_group_id)`,
		`CREATE INDEX IF NOT EXISTS idx_resource_tags_json ON resource USING gin(tags_json)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// addResourceTagKeyIndex speeds up key-scoped tag lookups on the mirror table.
func addResourceTagKeyIndex(db *gorm.DB) error {
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_resource_tag_key ON resource_tag(key)`).Error
}
