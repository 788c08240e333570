package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"zeladoria-bknd/internal/models"

	"github.com/google/uuid"
)

// APIError is a non-2xx response from the zeladoria API carrying the server's
// error detail when one was supplied.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// Client talks to the zeladoria API. It implements selection.Registrar.
type Client struct {
	base string
	http *http.Client
}

// New creates a Client for the given base URL. A nil httpClient gets a
// default with a 15s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: httpClient,
	}
}

// ListAreas retrieves the ordered inventory for one category.
func (c *Client) ListAreas(ctx context.Context, category string) ([]models.ServiceArea, error) {
	var payload models.AreasResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/areas/"+category, nil, &payload); err != nil {
		return nil, fmt.Errorf("list %s areas: %w", category, err)
	}
	return payload.Data, nil
}

// ListTeams retrieves all field teams.
func (c *Client) ListTeams(ctx context.Context) ([]models.Team, error) {
	var payload models.TeamsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/teams", nil, &payload); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return payload.Data, nil
}

// RegisterDaily issues the bulk registration command: one new history event
// dated date for every area in areaIDs.
func (c *Client) RegisterDaily(ctx context.Context, areaIDs []int64, date time.Time) (models.RegisterDailyResponse, error) {
	req := models.RegisterDailyRequest{
		AreaIDs: areaIDs,
		Date:    date.Format("2006-01-02"),
	}
	var payload models.RegisterDailyResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/areas/register-daily", req, &payload); err != nil {
		return models.RegisterDailyResponse{}, err
	}
	return payload, nil
}

// UpdatePosition moves an area marker.
func (c *Client) UpdatePosition(ctx context.Context, areaID int64, lat, lng float64) error {
	req := models.UpdatePositionRequest{Lat: lat, Lng: lng}
	path := fmt.Sprintf("/api/v1/areas/%d/position", areaID)
	if err := c.do(ctx, http.MethodPatch, path, req, nil); err != nil {
		return fmt.Errorf("update position of area %d: %w", areaID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// decodeError extracts the server's error detail from a failure body, which
// is either {"error": ...} or {"message": ...}.
func decodeError(resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
