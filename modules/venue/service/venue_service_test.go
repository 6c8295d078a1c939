package service

import (
	"context"
	"testing"

	"venuehub/core/errors"
	"venuehub/modules/venue/dto"
	"venuehub/modules/venue/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVenueRepo struct {
	byID   map[uuid.UUID]*entity.Venue
	bySlug map[string]*entity.Venue
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{
		byID:   make(map[uuid.UUID]*entity.Venue),
		bySlug: make(map[string]*entity.Venue),
	}
}

func (f *fakeVenueRepo) Create(_ context.Context, venue *entity.Venue) (*entity.Venue, error) {
	venue.ID = uuid.New()
	f.byID[venue.ID] = venue
	f.bySlug[venue.Slug] = venue
	return venue, nil
}

func (f *fakeVenueRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Venue, error) {
	return f.byID[id], nil
}

func (f *fakeVenueRepo) GetBySlug(_ context.Context, slug string) (*entity.Venue, error) {
	return f.bySlug[slug], nil
}

func (f *fakeVenueRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]entity.Venue, error) {
	var out []entity.Venue
	for _, v := range f.byID {
		if v.OwnerID == ownerID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVenueRepo) IsOwnedBy(_ context.Context, venueID, userID uuid.UUID) (bool, error) {
	v := f.byID[venueID]
	return v != nil && v.OwnerID == userID, nil
}

func TestCreateVenueSlugifiesName(t *testing.T) {
	repo := newFakeVenueRepo()
	svc := NewVenueService(repo, nil)
	ownerID := uuid.New()

	venue, appErr := svc.Create(context.Background(), ownerID, &dto.CreateVenueRequest{
		Name:     "The Grand Ballroom & Gardens",
		City:     "Lisbon",
		Capacity: 300,
	})
	require.Nil(t, appErr)
	// gosimple/slug spells out the ampersand.
	assert.Equal(t, "the-grand-ballroom-and-gardens", venue.Slug)

	found, appErr := svc.GetBySlug(context.Background(), venue.Slug)
	require.Nil(t, appErr)
	assert.Equal(t, venue.ID, found.ID)
}

func TestCreateVenueValidation(t *testing.T) {
	svc := NewVenueService(newFakeVenueRepo(), nil)

	_, appErr := svc.Create(context.Background(), uuid.New(), &dto.CreateVenueRequest{Name: ""})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	_, appErr = svc.Create(context.Background(), uuid.New(), &dto.CreateVenueRequest{Name: "x", Capacity: -1})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestEnsureOwnership(t *testing.T) {
	repo := newFakeVenueRepo()
	svc := NewVenueService(repo, nil)
	ownerID, strangerID := uuid.New(), uuid.New()

	venue, appErr := svc.Create(context.Background(), ownerID, &dto.CreateVenueRequest{Name: "Loft", Capacity: 50})
	require.Nil(t, appErr)

	assert.Nil(t, svc.EnsureOwnership(context.Background(), venue.ID, ownerID))

	appErr = svc.EnsureOwnership(context.Background(), venue.ID, strangerID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	appErr = svc.EnsureOwnership(context.Background(), uuid.New(), ownerID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
