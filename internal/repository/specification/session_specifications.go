package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByName filters by unique name (service types)
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// EnabledOnly restricts service types to selectable ones
type EnabledOnly struct{}

func (s EnabledOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("enabled = ?", true)
}

// ByStatus filters by status column (sessions, follow-ups)
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByIntegrationPoint filters validation records for one integration
type ByIntegrationPoint struct {
	Point string
}

func (s ByIntegrationPoint) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("integration_point = ?", s.Point)
}

// DueBefore selects follow-ups whose scheduled time has passed
type DueBefore struct {
	Now time.Time
}

func (s DueBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scheduled_at <= ?", s.Now)
}
