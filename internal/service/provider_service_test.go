package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ligueylu-backend/internal/domain"
	"ligueylu-backend/pkg/utils"
)

func mustCreate(t *testing.T, env *testEnv, email string) *domain.Provider {
	t.Helper()
	p, err := env.svc.Create(context.Background(), CreateProviderRequest{
		Email:    email,
		FullName: "Awa Ndiaye",
		Password: "s3cret",
		Phone:    "+221770000000",
	})
	require.NoError(t, err)
	return p
}

func TestCreateProvider(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.RoleProvider, p.Role)
	assert.False(t, p.Active)
	assert.NotEqual(t, "s3cret", p.PasswordHash)
	assert.True(t, utils.CheckPassword("s3cret", p.PasswordHash))

	got, err := env.svc.GetByEmail(ctx, "awa@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestCreateDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mustCreate(t, env, "awa@example.com")
	_, err := env.svc.Create(ctx, CreateProviderRequest{
		Email:    "awa@example.com",
		FullName: "Someone Else",
		Password: "other",
	})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	all, err := env.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Awa Ndiaye", all[0].FullName)
}

func TestGetByIDNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.GetByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProviderKeepsStateAndEdges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	_, err := env.svc.AttachSpecialty(ctx, p.ID, domain.Specialty{Label: "Plomberie"})
	require.NoError(t, err)
	_, err = env.svc.Activate(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, env.svc.UpdateScore(ctx, p.ID, 4.2))

	_, err = env.svc.Update(ctx, p.ID, UpdateProviderRequest{
		Email:    "awa.ndiaye@example.com",
		FullName: "Awa N.",
		Password: "newpass",
		Phone:    "+221771111111",
	})
	require.NoError(t, err)

	got, err := env.svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "awa.ndiaye@example.com", got.Email)
	assert.True(t, got.Active)
	assert.InDelta(t, 4.2, got.Score, 1e-9)

	specs, err := env.svc.SpecialtiesOf(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, specs, 1)
}

func TestDeleteProvider(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	require.NoError(t, env.svc.Delete(ctx, p.ID))

	_, err := env.svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteNotFoundLeavesStore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mustCreate(t, env, "awa@example.com")
	err := env.svc.Delete(ctx, "no-such-id")
	require.ErrorIs(t, err, domain.ErrNotFound)

	all, err := env.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestActivateIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")

	ok, err := env.svc.Activate(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second activation is a no-op, not an error.
	ok, err = env.svc.Activate(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := env.svc.IsActive(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Active)
}

func TestActivateNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Activate(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIsActiveNilForInactive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")

	got, err := env.svc.IsActive(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = env.svc.IsActive(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScoreLastWriteWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	require.NoError(t, env.svc.UpdateScore(ctx, p.ID, 3.0))
	require.NoError(t, env.svc.UpdateScore(ctx, p.ID, 4.5))

	score, err := env.svc.GetScore(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, score, 1e-9)

	above, err := env.svc.FindByScoreGreaterThan(ctx, 4.0)
	require.NoError(t, err)
	require.Len(t, above, 1)
	assert.Equal(t, p.ID, above[0].ID)

	above, err = env.svc.FindByScoreGreaterThan(ctx, 5.0)
	require.NoError(t, err)
	assert.Empty(t, above)
}

func TestAddressUpdateAndCitySearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	other := mustCreate(t, env, "moussa@example.com")

	addr := domain.Address{Street: "12 Rue Blaise Diagne", City: "Dakar", Country: "SN", Zip: "10000"}
	require.NoError(t, env.svc.UpdateAddress(ctx, p.ID, addr))
	require.NoError(t, env.svc.UpdateAddress(ctx, other.ID, domain.Address{City: "Thiès"}))

	got, err := env.svc.GetAddress(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	inDakar, err := env.svc.FindByCity(ctx, "Dakar")
	require.NoError(t, err)
	require.Len(t, inDakar, 1)
	assert.Equal(t, p.ID, inDakar[0].ID)
}

// ---------- specialties ----------

func TestAttachSpecialtyDedupByLabelFold(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := mustCreate(t, env, "a@example.com")
	b := mustCreate(t, env, "b@example.com")

	first, err := env.svc.AttachSpecialty(ctx, a.ID, domain.Specialty{Label: "Plomberie"})
	require.NoError(t, err)
	second, err := env.svc.AttachSpecialty(ctx, b.ID, domain.Specialty{Label: "plomberie"})
	require.NoError(t, err)

	// Same record: the first-written casing is canonical.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Plomberie", second.Label)

	all, err := env.specialties.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAttachSpecialtyTwiceSingleEdge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	_, err := env.svc.AttachSpecialty(ctx, p.ID, domain.Specialty{Label: "Plomberie"})
	require.NoError(t, err)
	_, err = env.svc.AttachSpecialty(ctx, p.ID, domain.Specialty{Label: "PLOMBERIE"})
	require.NoError(t, err)

	specs, err := env.svc.SpecialtiesOf(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, specs, 1)
}

func TestAttachSpecialtyByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := mustCreate(t, env, "a@example.com")
	b := mustCreate(t, env, "b@example.com")

	spec, err := env.svc.AttachSpecialty(ctx, a.ID, domain.Specialty{Label: "Électricité"})
	require.NoError(t, err)

	// Attaching by ID ignores the candidate's label entirely.
	got, err := env.svc.AttachSpecialty(ctx, b.ID, domain.Specialty{ID: spec.ID, Label: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "Électricité", got.Label)

	_, err = env.svc.AttachSpecialty(ctx, b.ID, domain.Specialty{ID: "no-such-id"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttachSpecialtyEmptyLabel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	_, err := env.svc.AttachSpecialty(ctx, p.ID, domain.Specialty{Label: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestDetachSpecialtyRetainsRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := mustCreate(t, env, "a@example.com")
	b := mustCreate(t, env, "b@example.com")

	spec, err := env.svc.AttachSpecialty(ctx, a.ID, domain.Specialty{Label: "Plomberie"})
	require.NoError(t, err)
	_, err = env.svc.AttachSpecialty(ctx, b.ID, domain.Specialty{ID: spec.ID})
	require.NoError(t, err)

	require.NoError(t, env.svc.DetachSpecialty(ctx, a.ID, spec.ID))

	specs, err := env.svc.SpecialtiesOf(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, specs)

	// Record and the other provider's edge survive the detach.
	kept, err := env.specialties.FindByID(ctx, spec.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	specs, err = env.svc.SpecialtiesOf(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, specs, 1)
}

func TestDetachThenReattachReusesRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	spec, err := env.svc.AttachSpecialty(ctx, p.ID, domain.Specialty{Label: "Plomberie"})
	require.NoError(t, err)
	require.NoError(t, env.svc.DetachSpecialty(ctx, p.ID, spec.ID))

	again, err := env.svc.AttachSpecialty(ctx, p.ID, domain.Specialty{Label: "plomberie"})
	require.NoError(t, err)
	assert.Equal(t, spec.ID, again.ID)
}

func TestDetachSpecialtyUnknown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	err := env.svc.DetachSpecialty(ctx, p.ID, "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchBySpecialty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := mustCreate(t, env, "a@example.com")
	b := mustCreate(t, env, "b@example.com")
	c := mustCreate(t, env, "c@example.com")

	_, err := env.svc.AttachSpecialty(ctx, a.ID, domain.Specialty{Label: "Plomberie"})
	require.NoError(t, err)
	_, err = env.svc.AttachSpecialty(ctx, b.ID, domain.Specialty{Label: "Plomberie sanitaire"})
	require.NoError(t, err)
	_, err = env.svc.AttachSpecialty(ctx, c.ID, domain.Specialty{Label: "Électricité"})
	require.NoError(t, err)

	// Substring, case-insensitive.
	got, err := env.svc.SearchBySpecialty(ctx, "plomb")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = env.svc.SearchBySpecialty(ctx, "jardinage")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = env.svc.SearchBySpecialty(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSearchBySpecialtyNoDuplicateRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	_, err := env.svc.AttachSpecialty(ctx, p.ID, domain.Specialty{Label: "Plomberie"})
	require.NoError(t, err)
	_, err = env.svc.AttachSpecialty(ctx, p.ID, domain.Specialty{Label: "Plomberie sanitaire"})
	require.NoError(t, err)

	got, err := env.svc.SearchBySpecialty(ctx, "plomb")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCountBySpecialty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := mustCreate(t, env, "a@example.com")
	b := mustCreate(t, env, "b@example.com")

	_, err := env.svc.AttachSpecialty(ctx, a.ID, domain.Specialty{Label: "Plomberie"})
	require.NoError(t, err)
	_, err = env.svc.AttachSpecialty(ctx, b.ID, domain.Specialty{Label: "plomberie"})
	require.NoError(t, err)
	_, err = env.svc.AttachSpecialty(ctx, a.ID, domain.Specialty{Label: "Électricité"})
	require.NoError(t, err)

	counts, err := env.svc.CountBySpecialty(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"Plomberie":   2,
		"Électricité": 1,
	}, counts)
}

// ---------- services ----------

func TestAttachServiceStampsOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	svc, err := env.svc.AttachService(ctx, p.ID, domain.Service{
		Name:        "Débouchage évier",
		Description: "Intervention sous 24h",
		Price:       15000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, svc.ID)
	assert.Equal(t, p.ID, svc.ProviderID)

	list, err := env.svc.ServicesOf(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, svc.ID, list[0].ID)
}

func TestAttachServiceByIDKeepsOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := mustCreate(t, env, "a@example.com")
	b := mustCreate(t, env, "b@example.com")

	svc, err := env.svc.AttachService(ctx, a.ID, domain.Service{Name: "Débouchage évier", Price: 15000})
	require.NoError(t, err)

	shared, err := env.svc.AttachService(ctx, b.ID, domain.Service{ID: svc.ID})
	require.NoError(t, err)
	// The creator stays on the record; membership is the edge.
	assert.Equal(t, a.ID, shared.ProviderID)

	all, err := env.services.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	list, err := env.svc.ServicesOf(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAttachServiceUnknownID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	_, err := env.svc.AttachService(ctx, p.ID, domain.Service{ID: "no-such-id"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDetachServiceRetainsRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	svc, err := env.svc.AttachService(ctx, p.ID, domain.Service{Name: "Débouchage évier"})
	require.NoError(t, err)

	require.NoError(t, env.svc.DetachService(ctx, p.ID, svc.ID))

	list, err := env.svc.ServicesOf(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	kept, err := env.services.FindByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

// ---------- reservations ----------

func TestAttachReservationStampsCreatedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	res, err := env.svc.AttachReservation(ctx, p.ID, domain.Reservation{
		Status: "pending",
		Note:   "client appelle avant",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, p.ID, res.ProviderID)
	assert.False(t, res.CreatedAt.IsZero())

	list, err := env.svc.ReservationsOf(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDetachReservationRetainsRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := mustCreate(t, env, "awa@example.com")
	res, err := env.svc.AttachReservation(ctx, p.ID, domain.Reservation{Status: "pending"})
	require.NoError(t, err)

	require.NoError(t, env.svc.DetachReservation(ctx, p.ID, res.ID))

	list, err := env.svc.ReservationsOf(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	kept, err := env.reservations.FindByID(ctx, res.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, "pending", kept.Status)
}

func TestAttachReservationUnknownProvider(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.AttachReservation(context.Background(), "no-such-id", domain.Reservation{Status: "pending"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
