package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"venuehub/core/constants"
	"venuehub/core/logger"
)

const googleCalendarAPIBase = "https://www.googleapis.com/calendar/v3"

// RemoteEventTime is the provider's start/end representation: dateTime for
// timed events, date for all-day events.
type RemoteEventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

type RemoteEvent struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	Summary     string          `json:"summary"`
	Description string          `json:"description,omitempty"`
	Start       RemoteEventTime `json:"start"`
	End         RemoteEventTime `json:"end"`
	Recurrence  []string        `json:"recurrence,omitempty"`
}

// WatchResult is the provider's acknowledgement of a push channel.
type WatchResult struct {
	ResourceID string
	Expiration time.Time
}

type GoogleCalendarClient interface {
	// FetchEvents returns events between now and now+lookAheadDays, with
	// recurring events expanded by the provider.
	FetchEvents(ctx context.Context, accessToken, calendarID string, lookAheadDays int) ([]RemoteEvent, error)
	// Watch registers a push-notification channel on the calendar. The token
	// is echoed back by the provider on every notification.
	Watch(ctx context.Context, accessToken, calendarID, channelID, channelToken, address string, ttl time.Duration) (*WatchResult, error)
	// StopChannel tears down a push channel. Best effort.
	StopChannel(ctx context.Context, accessToken, channelID, resourceID string) error
}

type googleCalendarClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGoogleCalendarClient() GoogleCalendarClient {
	return NewGoogleCalendarClientWithBaseURL(googleCalendarAPIBase)
}

// NewGoogleCalendarClientWithBaseURL points the client at a different API
// origin. Used by tests.
func NewGoogleCalendarClientWithBaseURL(baseURL string) GoogleCalendarClient {
	return &googleCalendarClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: constants.GoogleClientTimeout},
	}
}

func (c *googleCalendarClient) FetchEvents(ctx context.Context, accessToken, calendarID string, lookAheadDays int) ([]RemoteEvent, error) {
	if lookAheadDays <= 0 {
		lookAheadDays = constants.DefaultLookAheadDays
	}

	now := time.Now()
	params := url.Values{}
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")
	params.Set("timeMin", now.Format(time.RFC3339))
	params.Set("timeMax", now.AddDate(0, 0, lookAheadDays).Format(time.RFC3339))
	params.Set("maxResults", strconv.Itoa(constants.MaxCalendarResults))

	apiURL := fmt.Sprintf("%s/calendars/%s/events?%s", c.baseURL, url.PathEscape(calendarID), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("GoogleCalendarClient:FetchEvents:DoRequest:Error", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("GoogleCalendarClient:FetchEvents:APIError", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("calendar events API error: %d", resp.StatusCode)
	}

	var result struct {
		Items []RemoteEvent `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Error("GoogleCalendarClient:FetchEvents:Decode:Error", "error", err)
		return nil, err
	}

	return result.Items, nil
}

func (c *googleCalendarClient) Watch(ctx context.Context, accessToken, calendarID, channelID, channelToken, address string, ttl time.Duration) (*WatchResult, error) {
	payload := map[string]any{
		"id":      channelID,
		"type":    "web_hook",
		"address": address,
		"token":   channelToken,
		"params": map[string]string{
			"ttl": strconv.Itoa(int(ttl.Seconds())),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	apiURL := fmt.Sprintf("%s/calendars/%s/events/watch", c.baseURL, url.PathEscape(calendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("GoogleCalendarClient:Watch:DoRequest:Error", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Error("GoogleCalendarClient:Watch:APIError", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("calendar watch API error: %d", resp.StatusCode)
	}

	var result struct {
		ResourceID string `json:"resourceId"`
		Expiration string `json:"expiration"` // epoch milliseconds
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	expiration := time.Now().Add(ttl)
	if ms, err := strconv.ParseInt(result.Expiration, 10, 64); err == nil {
		expiration = time.UnixMilli(ms)
	}

	return &WatchResult{
		ResourceID: result.ResourceID,
		Expiration: expiration,
	}, nil
}

func (c *googleCalendarClient) StopChannel(ctx context.Context, accessToken, channelID, resourceID string) error {
	payload := map[string]string{
		"id":         channelID,
		"resourceId": resourceID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/channels/stop", strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("channel stop API error: %d", resp.StatusCode)
	}
	return nil
}
