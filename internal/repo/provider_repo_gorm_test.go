package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ligueylu-backend/internal/domain"
	"ligueylu-backend/pkg/utils"
)

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

func seedProvider(t *testing.T, r *ProviderRepo, email string) *domain.Provider {
	t.Helper()
	p := &domain.Provider{
		ID:       utils.NewID(),
		Email:    email,
		FullName: "Test Provider",
		Role:     domain.RoleProvider,
	}
	require.NoError(t, r.Create(context.Background(), p))
	return p
}

func TestProviderLookupsReturnNilOnMiss(t *testing.T) {
	r := NewProviderRepo(newTestDB(t))
	ctx := context.Background()

	p, err := r.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = r.FindByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = r.FindByIDAndActive(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProviderDeleteReportsRowsAffected(t *testing.T) {
	r := NewProviderRepo(newTestDB(t))
	ctx := context.Background()

	p := seedProvider(t, r, "a@example.com")

	ok, err := r.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetActiveSameValueNoError(t *testing.T) {
	r := NewProviderRepo(newTestDB(t))
	ctx := context.Background()

	p := seedProvider(t, r, "a@example.com")
	require.NoError(t, r.SetActive(ctx, p.ID, true))
	require.NoError(t, r.SetActive(ctx, p.ID, true))

	got, err := r.FindByIDAndActive(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Active)
}

func TestUpdateAddressWritesAllColumns(t *testing.T) {
	r := NewProviderRepo(newTestDB(t))
	ctx := context.Background()

	p := seedProvider(t, r, "a@example.com")
	full := domain.Address{Street: "12 Rue Blaise Diagne", City: "Dakar", Country: "SN", Zip: "10000"}
	require.NoError(t, r.UpdateAddress(ctx, p.ID, full))

	// A later partial address clears the fields it leaves empty.
	require.NoError(t, r.UpdateAddress(ctx, p.ID, domain.Address{City: "Thiès"}))

	got, err := r.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Address{City: "Thiès"}, got.Address)
}

func TestAddSpecialtyEdgeIdempotent(t *testing.T) {
	db := newTestDB(t)
	r := NewProviderRepo(db)
	ctx := context.Background()

	p := seedProvider(t, r, "a@example.com")
	s := &domain.Specialty{ID: utils.NewID(), Label: "Plomberie", LabelNorm: "plomberie"}
	require.NoError(t, db.Create(s).Error)

	require.NoError(t, r.AddSpecialty(ctx, p, s))
	require.NoError(t, r.AddSpecialty(ctx, p, s))

	var edges int64
	require.NoError(t, db.Table("provider_specialties").Count(&edges).Error)
	assert.Equal(t, int64(1), edges)
}

func TestRemoveSpecialtyKeepsRecord(t *testing.T) {
	db := newTestDB(t)
	r := NewProviderRepo(db)
	ctx := context.Background()

	p := seedProvider(t, r, "a@example.com")
	s := &domain.Specialty{ID: utils.NewID(), Label: "Plomberie", LabelNorm: "plomberie"}
	require.NoError(t, db.Create(s).Error)
	require.NoError(t, r.AddSpecialty(ctx, p, s))

	require.NoError(t, r.RemoveSpecialty(ctx, p, s))

	list, err := r.Specialties(ctx, p)
	require.NoError(t, err)
	assert.Empty(t, list)

	var count int64
	require.NoError(t, db.Model(&domain.Specialty{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSpecialtyRepoLabelFold(t *testing.T) {
	db := newTestDB(t)
	r := NewSpecialtyRepo(db)
	ctx := context.Background()

	s := &domain.Specialty{ID: utils.NewID(), Label: "Plomberie"}
	require.NoError(t, r.Create(ctx, s))
	assert.Equal(t, "plomberie", s.LabelNorm)

	got, err := r.FindByLabelFold(ctx, "PLOMBERIE")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.ID, got.ID)

	got, err = r.FindByLabelFold(ctx, "Jardinage")
	require.NoError(t, err)
	assert.Nil(t, got)
}
