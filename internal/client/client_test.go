package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zeladoria-bknd/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDaily_Success(t *testing.T) {
	var gotBody models.RegisterDailyRequest
	var gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/areas/register-daily", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotRequestID = r.Header.Get("X-Request-ID")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.RegisterDailyResponse{
			Message: "2 área(s) registrada(s) com sucesso",
			Count:   2,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	date := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	res, err := c.RegisterDaily(context.Background(), []int64{3, 9}, date)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []int64{3, 9}, gotBody.AreaIDs)
	assert.Equal(t, "2026-03-09", gotBody.Date)
	assert.NotEmpty(t, gotRequestID, "every request carries a correlation id")
}

func TestRegisterDaily_ServerErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "registration date precedes the last recorded service: area 3 last serviced on 2026-03-12",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.RegisterDaily(context.Background(), []int64{3}, time.Now())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Contains(t, apiErr.Message, "area 3")
	assert.Equal(t, apiErr.Message, err.Error(), "detail is surfaced verbatim")
}

func TestRegisterDaily_ErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.RegisterDaily(context.Background(), []int64{1}, time.Now())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "unexpected status 502", apiErr.Error())
}

func TestListAreas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/areas/rocagem", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AreasResponse{
			Data: []models.ServiceArea{
				{ID: 1, Endereco: "Av. Duque de Caxias, 635"},
				{ID: 2, Endereco: "Rua Piauí, 200"},
			},
			Count: 2,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	areas, err := c.ListAreas(context.Background(), "rocagem")
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, int64(1), areas[0].ID, "inventory order is preserved")
}

func TestListTeams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/teams", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.TeamsResponse{
			Data:  []models.Team{{ID: 1, Type: models.TeamGiroZero, Status: models.TeamWorking}},
			Count: 1,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	teams, err := c.ListTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, models.TeamGiroZero, teams[0].Type)
}

func TestUpdatePosition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/v1/areas/42/position", r.URL.Path)
		var body models.UpdatePositionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.InDelta(t, -23.31, body.Lat, 0.001)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.UpdatePosition(context.Background(), 42, -23.31, -51.16)
	require.NoError(t, err)
}
