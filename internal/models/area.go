package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Inventory categories served by the areas endpoints.
const (
	CategoryRocagem = "rocagem"
	CategoryJardins = "jardins"
)

// Operational statuses as shown on the dashboard.
const (
	StatusPendente   = "Pendente"
	StatusAgendado   = "Agendado"
	StatusEmExecucao = "Em Execução"
	StatusConcluido  = "Concluído"
)

// HistoryEntry is one completed service event. An area's history is
// append-only and chronological: the last element is always the most recent
// service, by position.
type HistoryEntry struct {
	Date string `json:"date"` // YYYY-MM-DD
}

// Day parses the entry date and truncates it to midnight UTC. ok is false
// when the stored date is malformed.
func (h HistoryEntry) Day() (time.Time, bool) {
	t, err := time.Parse("2006-01-02", h.Date)
	if err != nil {
		t, err = time.Parse(time.RFC3339, h.Date)
		if err != nil {
			return time.Time{}, false
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// ServiceArea represents one geolocated public area under maintenance
type ServiceArea struct {
	bun.BaseModel `bun:"table:app.service_areas,alias:ar"`

	ID            int64          `bun:"id,pk,autoincrement" json:"id"`
	Category      string         `bun:"category,notnull" json:"category"`
	Endereco      string         `bun:"endereco,notnull" json:"endereco"`
	Bairro        *string        `bun:"bairro" json:"bairro"`
	Lote          *int           `bun:"lote" json:"lote"`
	Tipo          string         `bun:"tipo,notnull" json:"tipo"`
	Servico       *string        `bun:"servico" json:"servico,omitempty"`
	Status        string         `bun:"status,notnull,default:'Pendente'" json:"status"`
	ScheduledDate *time.Time     `bun:"scheduled_date" json:"scheduledDate"`
	MetragemM2    *float64       `bun:"metragem_m2" json:"metragem_m2"`
	Lat           float64        `bun:"lat,notnull" json:"lat"`
	Lng           float64        `bun:"lng,notnull" json:"lng"`
	History       []HistoryEntry `bun:"history,type:jsonb" json:"history"`
	CreatedAt     time.Time      `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time      `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// LastHistory returns the most recent service event by position, or nil when
// the area has never been serviced.
func (a *ServiceArea) LastHistory() *HistoryEntry {
	if len(a.History) == 0 {
		return nil
	}
	return &a.History[len(a.History)-1]
}

// AreasResponse is the inventory read payload.
type AreasResponse struct {
	Data  []ServiceArea `json:"data"`
	Count int           `json:"count"`
}

// RegisterDailyRequest is the bulk registration command payload.
type RegisterDailyRequest struct {
	AreaIDs []int64 `json:"areaIds"`
	Date    string  `json:"date"` // YYYY-MM-DD
}

// RegisterDailyResponse reports how many areas received a new history event.
type RegisterDailyResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// UpdatePositionRequest moves an area marker.
type UpdatePositionRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
