package service

import (
	"context"
	"fmt"
	"time"

	"venuehub/core/errors"
	"venuehub/modules/calendar/dto"
	"venuehub/modules/calendar/entity"
	venueDto "venuehub/modules/venue/dto"
	venueEntity "venuehub/modules/venue/entity"

	"github.com/google/uuid"
)

func notConnectedErr() *errors.AppError {
	return errors.NewAppError(errors.ErrNotConnected, "Google Calendar is not connected", nil)
}

type fakeTokenRepo struct {
	token    *entity.CalendarToken
	getErr   error
	upserted *entity.CalendarToken
	deleted  bool
}

func (f *fakeTokenRepo) GetByUserID(_ context.Context, _ uuid.UUID) (*entity.CalendarToken, error) {
	return f.token, f.getErr
}

func (f *fakeTokenRepo) Upsert(_ context.Context, token *entity.CalendarToken) error {
	copied := *token
	f.upserted = &copied
	return nil
}

func (f *fakeTokenRepo) Delete(_ context.Context, _ uuid.UUID) error {
	f.deleted = true
	return nil
}

type fakeTokenService struct {
	token  *entity.CalendarToken
	appErr *errors.AppError
	calls  int
}

func (f *fakeTokenService) GetValidToken(_ context.Context, _ uuid.UUID) (*entity.CalendarToken, *errors.AppError) {
	f.calls++
	return f.token, f.appErr
}

func (f *fakeTokenService) IsConnected(_ context.Context, _ uuid.UUID) (bool, error) {
	return f.token != nil, nil
}

func (f *fakeTokenService) SaveConnection(_ context.Context, _ uuid.UUID, _, _ string, _ time.Time, _ string) (*entity.CalendarToken, *errors.AppError) {
	return f.token, nil
}

type fakeCalendarClient struct {
	events     []RemoteEvent
	fetchErr   error
	fetchCalls int

	watch       *WatchResult
	watchErr    error
	watchCalls  []string
	watchTokens []string
	stopped     []string
}

func (f *fakeCalendarClient) FetchEvents(_ context.Context, _, _ string, _ int) ([]RemoteEvent, error) {
	f.fetchCalls++
	return f.events, f.fetchErr
}

func (f *fakeCalendarClient) Watch(_ context.Context, _, _, channelID, channelToken, _ string, ttl time.Duration) (*WatchResult, error) {
	f.watchCalls = append(f.watchCalls, channelID)
	f.watchTokens = append(f.watchTokens, channelToken)
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	if f.watch != nil {
		return f.watch, nil
	}
	return &WatchResult{ResourceID: "resource-" + channelID, Expiration: time.Now().Add(ttl)}, nil
}

func (f *fakeCalendarClient) StopChannel(_ context.Context, _, channelID, _ string) error {
	f.stopped = append(f.stopped, channelID)
	return nil
}

// fakeAvailabilityRepo mimics the keyed upsert of the real repository:
// imported rows are identified by (venue_id, google_event_id).
type fakeAvailabilityRepo struct {
	remote      map[string]entity.AvailabilityBlock
	manual      map[uuid.UUID]*entity.AvailabilityBlock
	purgeCalls  int
	upsertErr   error
	upsertCalls int
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{
		remote: make(map[string]entity.AvailabilityBlock),
		manual: make(map[uuid.UUID]*entity.AvailabilityBlock),
	}
}

func remoteKey(venueID uuid.UUID, eventID string) string {
	return fmt.Sprintf("%s|%s", venueID, eventID)
}

func (f *fakeAvailabilityRepo) Insert(_ context.Context, block *entity.AvailabilityBlock) (*entity.AvailabilityBlock, error) {
	block.ID = uuid.New()
	f.manual[block.ID] = block
	return block, nil
}

func (f *fakeAvailabilityRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.AvailabilityBlock, error) {
	if b, ok := f.manual[id]; ok {
		return b, nil
	}
	return nil, nil
}

func (f *fakeAvailabilityRepo) ListByVenue(_ context.Context, venueID uuid.UUID) ([]entity.AvailabilityBlock, error) {
	var out []entity.AvailabilityBlock
	for _, b := range f.remote {
		if b.VenueID == venueID {
			out = append(out, b)
		}
	}
	for _, b := range f.manual {
		if b.VenueID == venueID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) UpsertRemote(_ context.Context, blocks []entity.AvailabilityBlock) (int, error) {
	f.upsertCalls++
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	for _, b := range blocks {
		f.remote[remoteKey(b.VenueID, *b.GoogleEventID)] = b
	}
	return len(blocks), nil
}

func (f *fakeAvailabilityRepo) DeleteBySource(_ context.Context, venueID uuid.UUID, source string) error {
	f.purgeCalls++
	for k, b := range f.remote {
		if b.VenueID == venueID && b.Source == source {
			delete(f.remote, k)
		}
	}
	return nil
}

func (f *fakeAvailabilityRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	delete(f.manual, id)
	return nil
}

type fakeVenueService struct {
	ownershipErr *errors.AppError
}

func (f *fakeVenueService) Create(_ context.Context, _ uuid.UUID, _ *venueDto.CreateVenueRequest) (*venueEntity.Venue, *errors.AppError) {
	return nil, nil
}

func (f *fakeVenueService) GetByID(_ context.Context, _ uuid.UUID) (*venueEntity.Venue, *errors.AppError) {
	return nil, nil
}

func (f *fakeVenueService) GetBySlug(_ context.Context, _ string) (*venueEntity.Venue, *errors.AppError) {
	return nil, nil
}

func (f *fakeVenueService) ListMine(_ context.Context, _ uuid.UUID) ([]venueEntity.Venue, *errors.AppError) {
	return nil, nil
}

func (f *fakeVenueService) EnsureOwnership(_ context.Context, _, _ uuid.UUID) *errors.AppError {
	return f.ownershipErr
}

type fakeWebhookRepo struct {
	subs     map[string]*entity.WebhookSubscription
	upserted []*entity.WebhookSubscription
}

func newFakeWebhookRepo() *fakeWebhookRepo {
	return &fakeWebhookRepo{subs: make(map[string]*entity.WebhookSubscription)}
}

func (f *fakeWebhookRepo) Upsert(_ context.Context, sub *entity.WebhookSubscription) error {
	copied := *sub
	f.subs[sub.ChannelID] = &copied
	f.upserted = append(f.upserted, &copied)
	return nil
}

func (f *fakeWebhookRepo) GetByChannelID(_ context.Context, channelID string) (*entity.WebhookSubscription, error) {
	return f.subs[channelID], nil
}

func (f *fakeWebhookRepo) ListExpiring(_ context.Context, before time.Time) ([]entity.WebhookSubscription, error) {
	var out []entity.WebhookSubscription
	for _, sub := range f.subs {
		if sub.Expiration.Before(before) {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (f *fakeWebhookRepo) DeleteByChannelID(_ context.Context, channelID string) error {
	delete(f.subs, channelID)
	return nil
}

type fakeSyncService struct {
	resyncCalls int
	resyncErr   error
}

func (f *fakeSyncService) Sync(_ context.Context, _, _ uuid.UUID, _ int) (*dto.SyncResult, *errors.AppError) {
	return &dto.SyncResult{Success: true}, nil
}

func (f *fakeSyncService) ResyncVenue(_ context.Context, _ *entity.WebhookSubscription) error {
	f.resyncCalls++
	return f.resyncErr
}

type alertRecord struct {
	userID    uuid.UUID
	venueID   uuid.UUID
	alertType string
	message   string
}

type fakeAlertSink struct {
	alerts []alertRecord
}

func (f *fakeAlertSink) CalendarAlert(_ context.Context, userID, venueID uuid.UUID, alertType, message string) {
	f.alerts = append(f.alerts, alertRecord{userID: userID, venueID: venueID, alertType: alertType, message: message})
}
