package model

import (
	"encoding/json"
	"time"
)

// Measurement is one observation for a neighborhood at an exact instant.
// (neighborhood_id, ts) is the natural key used for upserts; the four payloads
// are opaque JSON blobs the middleware never interprets.
type Measurement struct {
	ID              int64           `db:"id"`
	NeighborhoodID  int64           `db:"neighborhood_id"`
	Timestamp       time.Time       `db:"ts"`
	Clima           json.RawMessage `db:"clima"`
	QualidadeDoAr   json.RawMessage `db:"qualidade_do_ar"`
	QualidadeDaAgua json.RawMessage `db:"qualidade_da_agua"`
	Riscos          json.RawMessage `db:"riscos"`
}
