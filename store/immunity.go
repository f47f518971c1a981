package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/bitmark-inc/immunity-api/schema"
)

// ImmunityCore is the relational source of persons, their vaccinations and
// their cases.
type ImmunityCore interface {
	Ping() error

	PersonHistory(ctx context.Context, personID uuid.UUID) (*schema.PersonHistory, error)
	PersonHistories(ctx context.Context) ([]schema.PersonHistory, error)
}

// ImmunityStore is an implementation of ImmunityCore
type ImmunityStore struct {
	ormDB *gorm.DB
}

func NewImmunityStore(ormDB *gorm.DB) *ImmunityStore {
	return &ImmunityStore{
		ormDB: ormDB,
	}
}

// Ping is to check the storage health status
func (s *ImmunityStore) Ping() error {
	return s.ormDB.DB().Ping()
}
