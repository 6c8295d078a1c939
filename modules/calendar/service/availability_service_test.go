package service

import (
	"context"
	"testing"

	"venuehub/core/constants"
	"venuehub/core/errors"
	"venuehub/modules/calendar/dto"
	"venuehub/modules/calendar/entity"
	"venuehub/modules/calendar/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHoursRepo struct {
	byVenue map[uuid.UUID][]entity.BusinessHours
}

func newFakeHoursRepo() *fakeHoursRepo {
	return &fakeHoursRepo{byVenue: make(map[uuid.UUID][]entity.BusinessHours)}
}

func (f *fakeHoursRepo) ListByVenue(_ context.Context, venueID uuid.UUID) ([]entity.BusinessHours, error) {
	return f.byVenue[venueID], nil
}

func (f *fakeHoursRepo) ReplaceForVenue(_ context.Context, venueID uuid.UUID, hours []entity.BusinessHours) error {
	f.byVenue[venueID] = hours
	return nil
}

var _ repository.BusinessHoursRepository = (*fakeHoursRepo)(nil)

func newAvailabilitySvc() (AvailabilityService, *fakeHoursRepo, *fakeAvailabilityRepo) {
	hours := newFakeHoursRepo()
	blocks := newFakeAvailabilityRepo()
	return NewAvailabilityService(hours, blocks, &fakeVenueService{}), hours, blocks
}

func TestSaveBusinessHoursReplacesSchedule(t *testing.T) {
	svc, hoursRepo, _ := newAvailabilitySvc()
	venueID := uuid.New()

	// Pre-existing schedule that the save must fully replace.
	hoursRepo.byVenue[venueID] = []entity.BusinessHours{{StartTime: "08:00", EndTime: "12:00"}}

	saved, appErr := svc.SaveBusinessHours(context.Background(), uuid.New(), &dto.SaveBusinessHoursRequest{
		VenueID: venueID.String(),
		BusinessHours: []dto.BusinessHourInput{
			{DaysOfWeek: []int{1, 2, 3, 4, 5}, StartTime: "09:00", EndTime: "17:00"},
			{DaysOfWeek: []int{6}, StartTime: "10:00", EndTime: "14:00"},
		},
	})
	require.Nil(t, appErr)
	require.Len(t, saved, 2)
	assert.Equal(t, "09:00", saved[0].StartTime)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, []int64(saved[0].DaysOfWeek))
}

func TestSaveBusinessHoursValidation(t *testing.T) {
	svc, _, _ := newAvailabilitySvc()
	venueID := uuid.New().String()

	cases := []struct {
		name  string
		input dto.BusinessHourInput
	}{
		{"empty days", dto.BusinessHourInput{DaysOfWeek: []int{}, StartTime: "09:00", EndTime: "17:00"}},
		{"day out of range", dto.BusinessHourInput{DaysOfWeek: []int{7}, StartTime: "09:00", EndTime: "17:00"}},
		{"bad start format", dto.BusinessHourInput{DaysOfWeek: []int{1}, StartTime: "9am", EndTime: "17:00"}},
		{"end before start", dto.BusinessHourInput{DaysOfWeek: []int{1}, StartTime: "17:00", EndTime: "09:00"}},
		{"end equals start", dto.BusinessHourInput{DaysOfWeek: []int{1}, StartTime: "09:00", EndTime: "09:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, appErr := svc.SaveBusinessHours(context.Background(), uuid.New(), &dto.SaveBusinessHoursRequest{
				VenueID:       venueID,
				BusinessHours: []dto.BusinessHourInput{tc.input},
			})
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		})
	}
}

func TestCreateManualBlock(t *testing.T) {
	svc, _, blocksRepo := newAvailabilitySvc()
	venueID := uuid.New()

	block, appErr := svc.CreateManualBlock(context.Background(), uuid.New(), &dto.CreateBlockRequest{
		VenueID:   venueID.String(),
		Title:     "Private maintenance",
		StartTime: "2026-09-10T08:00:00Z",
		EndTime:   "2026-09-10T12:00:00Z",
	})
	require.Nil(t, appErr)
	assert.Equal(t, constants.SourceManual, block.Source)
	assert.Nil(t, block.GoogleEventID)
	assert.Len(t, blocksRepo.manual, 1)
}

func TestCreateManualBlockRejectsInvertedInterval(t *testing.T) {
	svc, _, blocksRepo := newAvailabilitySvc()

	_, appErr := svc.CreateManualBlock(context.Background(), uuid.New(), &dto.CreateBlockRequest{
		VenueID:   uuid.New().String(),
		Title:     "Backwards",
		StartTime: "2026-09-10T12:00:00Z",
		EndTime:   "2026-09-10T08:00:00Z",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	assert.Empty(t, blocksRepo.manual, "nothing may be persisted when validation fails")
}

func TestDeleteBlockRejectsImportedBlocks(t *testing.T) {
	svc, _, blocksRepo := newAvailabilitySvc()
	venueID := uuid.New()

	eventID := "remote-ev"
	imported := &entity.AvailabilityBlock{
		VenueID:       venueID,
		Source:        constants.SourceGoogle,
		GoogleEventID: &eventID,
	}
	_, err := blocksRepo.Insert(context.Background(), imported)
	require.NoError(t, err)

	appErr := svc.DeleteBlock(context.Background(), uuid.New(), imported.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestDeleteBlockNotFound(t *testing.T) {
	svc, _, _ := newAvailabilitySvc()

	appErr := svc.DeleteBlock(context.Background(), uuid.New(), uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
