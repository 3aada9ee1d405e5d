package migrations

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Migration is the bookkeeping row: one entry per applied migration.
type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	Batch     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type MigrationFunc func(*gorm.DB) error

type MigrationDefinition struct {
	Name string
	Up   MigrationFunc
	Down MigrationFunc
}

type Migrator struct {
	db          *gorm.DB
	definitions []MigrationDefinition
}

// NewMigrator registers the full migration set. All definitions live in this
// package; callers never add their own.
func NewMigrator(db *gorm.DB) *Migrator {
	db.AutoMigrate(&Migration{})

	var definitions []MigrationDefinition
	definitions = append(definitions, GetMembershipMigrations()...)
	definitions = append(definitions, GetCoreMigrations()...)

	return &Migrator{db: db, definitions: definitions}
}

// Migrate applies every pending migration in one batch.
func (m *Migrator) Migrate() error {
	fmt.Println("Running database migrations...")

	batch := m.latestBatch() + 1

	for _, def := range m.definitions {
		if m.hasRun(def.Name) {
			continue
		}

		fmt.Printf("Migrating: %s\n", def.Name)

		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := def.Up(tx); err != nil {
				return err
			}
			return tx.Create(&Migration{Name: def.Name, Batch: batch}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", def.Name, err)
		}

		fmt.Printf("Migrated: %s\n", def.Name)
	}

	fmt.Println("Migration completed successfully")
	return nil
}

// Rollback reverts the given number of batches, newest first.
func (m *Migrator) Rollback(steps int) error {
	if steps <= 0 {
		steps = 1
	}

	fmt.Printf("Rolling back %d batch(es)...\n", steps)

	for i := 0; i < steps; i++ {
		batch := m.latestBatch()
		if batch == 0 {
			break
		}

		var applied []Migration
		m.db.Where("batch = ?", batch).Order("id DESC").Find(&applied)

		for _, record := range applied {
			def := m.find(record.Name)
			if def == nil || def.Down == nil {
				return fmt.Errorf("rollback not defined for migration: %s", record.Name)
			}

			fmt.Printf("Rolling back: %s\n", record.Name)

			err := m.db.Transaction(func(tx *gorm.DB) error {
				if err := def.Down(tx); err != nil {
					return err
				}
				return tx.Delete(&record).Error
			})
			if err != nil {
				return fmt.Errorf("rollback failed for %s: %w", record.Name, err)
			}
		}
	}

	fmt.Println("Rollback completed successfully")
	return nil
}

// Status returns the applied migrations in order.
func (m *Migrator) Status() []Migration {
	var applied []Migration
	m.db.Order("batch ASC, id ASC").Find(&applied)
	return applied
}

func (m *Migrator) hasRun(name string) bool {
	var count int64
	m.db.Model(&Migration{}).Where("name = ?", name).Count(&count)
	return count > 0
}

func (m *Migrator) latestBatch() int {
	var record Migration
	m.db.Order("batch DESC").First(&record)
	return record.Batch
}

func (m *Migrator) find(name string) *MigrationDefinition {
	for i := range m.definitions {
		if m.definitions[i].Name == name {
			return &m.definitions[i]
		}
	}
	return nil
}
