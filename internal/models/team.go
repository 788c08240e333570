package models

import (
	"github.com/uptrace/bun"
)

// The four field team categories.
const (
	TeamGiroZero   = "Giro Zero"
	TeamAcabamento = "Acabamento"
	TeamColeta     = "Coleta"
	TeamCapina     = "Capina"
)

// Team statuses.
const (
	TeamIdle    = "Idle"
	TeamWorking = "Working"
)

// Team is a field crew shown on the map. Read-only for this service: crews
// are positioned by an external tracker.
type Team struct {
	bun.BaseModel `bun:"table:app.teams,alias:tm"`

	ID     int64   `bun:"id,pk,autoincrement" json:"id"`
	Type   string  `bun:"type,notnull" json:"type"`
	Status string  `bun:"status,notnull,default:'Idle'" json:"status"`
	Lat    float64 `bun:"lat,notnull" json:"lat"`
	Lng    float64 `bun:"lng,notnull" json:"lng"`
	Lote   *int    `bun:"lote" json:"lote"`
}

// TeamsResponse is the team read payload.
type TeamsResponse struct {
	Data  []Team `json:"data"`
	Count int    `json:"count"`
}
