package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"venuehub/core/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchEventsSendsExpectedQuery(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)
		assert.Equal(t, "Bearer test-access", r.Header.Get("Authorization"))
		gotQuery = map[string]string{
			"singleEvents": r.URL.Query().Get("singleEvents"),
			"orderBy":      r.URL.Query().Get("orderBy"),
			"maxResults":   r.URL.Query().Get("maxResults"),
			"timeMin":      r.URL.Query().Get("timeMin"),
			"timeMax":      r.URL.Query().Get("timeMax"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"id":"ev-1","summary":"Booked","start":{"dateTime":"2026-09-10T14:00:00Z"},"end":{"dateTime":"2026-09-10T15:00:00Z"}},
			{"id":"ev-2","start":{"date":"2026-09-12"},"end":{"date":"2026-09-13"}}
		]}`))
	}))
	defer srv.Close()

	client := NewGoogleCalendarClientWithBaseURL(srv.URL)
	events, err := client.FetchEvents(context.Background(), "test-access", "primary", 30)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "true", gotQuery["singleEvents"], "recurring events must arrive pre-expanded")
	assert.Equal(t, "startTime", gotQuery["orderBy"])
	assert.Equal(t, strconv.Itoa(constants.MaxCalendarResults), gotQuery["maxResults"])
	assert.NotEmpty(t, gotQuery["timeMin"])
	assert.NotEmpty(t, gotQuery["timeMax"])

	assert.Equal(t, "ev-1", events[0].ID)
	assert.Equal(t, "Booked", events[0].Summary)
	assert.Equal(t, "2026-09-12", events[1].Start.Date)
}

func TestFetchEventsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401}}`))
	}))
	defer srv.Close()

	client := NewGoogleCalendarClientWithBaseURL(srv.URL)
	_, err := client.FetchEvents(context.Background(), "bad-token", "primary", 30)
	require.Error(t, err)
}

func TestWatchParsesExpiration(t *testing.T) {
	expiration := time.Now().Add(constants.WebhookChannelTTL).Truncate(time.Millisecond)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/calendars/primary/events/watch", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"resourceId":"res-42","expiration":"` + strconv.FormatInt(expiration.UnixMilli(), 10) + `"}`))
	}))
	defer srv.Close()

	client := NewGoogleCalendarClientWithBaseURL(srv.URL)
	result, err := client.Watch(context.Background(), "access", "primary", "channel-1", "secret-token", "https://example.com/hook", constants.WebhookChannelTTL)
	require.NoError(t, err)
	assert.Equal(t, "res-42", result.ResourceID)
	assert.True(t, result.Expiration.Equal(expiration))
}

func TestStopChannelAcceptsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channels/stop", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewGoogleCalendarClientWithBaseURL(srv.URL)
	require.NoError(t, client.StopChannel(context.Background(), "access", "channel-1", "res-42"))
}
