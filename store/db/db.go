package db

import (
	"github.com/pkg/errors"

	"github.com/Dilshanrad22/mind-case-backend/internal/profile"
	"github.com/Dilshanrad22/mind-case-backend/store"
	"github.com/Dilshanrad22/mind-case-backend/store/db/postgres"
	"github.com/Dilshanrad22/mind-case-backend/store/db/sqlite"
)

// NewDBDriver creates a new db driver based on profile.
// SQLite is the default and suits single-instance deployments;
// PostgreSQL is for deployments with concurrent writers.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q: only 'sqlite' and 'postgres' are supported", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
