package service

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ligueylu-backend/internal/domain"
	"ligueylu-backend/internal/repo"
)

// newTestDB opens a per-test in-memory sqlite database. The named DSN
// keeps the schema alive across pooled connections within one test
// without leaking between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Provider{},
		&domain.Specialty{},
		&domain.Service{},
		&domain.Reservation{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type testEnv struct {
	db           *gorm.DB
	svc          *ProviderService
	providers    *repo.ProviderRepo
	specialties  *repo.SpecialtyRepo
	services     *repo.ServiceRepo
	reservations *repo.ReservationRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	providers := repo.NewProviderRepo(db)
	specialties := repo.NewSpecialtyRepo(db)
	services := repo.NewServiceRepo(db)
	reservations := repo.NewReservationRepo(db)
	return &testEnv{
		db:           db,
		svc:          NewProviderService(providers, specialties, services, reservations, zap.NewNop()),
		providers:    providers,
		specialties:  specialties,
		services:     services,
		reservations: reservations,
	}
}
