package model

import "time"

// ExportRecord is a locally remembered report export.
type ExportRecord struct {
	ID         string    `db:"id"`
	Kind       string    `db:"kind"`
	EntityName string    `db:"entity_name"`
	FromDate   string    `db:"from_date"`
	ToDate     string    `db:"to_date"`
	Rows       int       `db:"row_count"`
	Path       string    `db:"path"`
	CreatedAt  time.Time `db:"created_at"`
}
