package model

import "time"

// Holiday marks one calendar date. Time-of-day is ignored everywhere.
type Holiday struct {
	ID   int64     `json:"id"`
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}
