package service

import (
	"database/sql"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/database"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/version"
)

// VersionInfo reports application and database versions plus feature
// availability for the mobile client's capability checks.
type VersionInfo struct {
	AppVersion string
	DbVersion  int64
	Features   map[string]bool
}

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the app version, migration level, and feature flags.
func (s *SystemService) CheckVersion() (VersionInfo, error) {
	dbVersion, err := database.Version(s.db)
	if err != nil {
		return VersionInfo{}, err
	}

	return VersionInfo{
		AppVersion: version.Version,
		DbVersion:  dbVersion,
		Features: map[string]bool{
			"wellness_score":  true,
			"recommendations": true,
			"telemetry":       true,
		},
	}, nil
}
