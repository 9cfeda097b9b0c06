package entity

import "time"

// Project obra o proyecto que consume materiales (contraparte de las salidas).
type Project struct {
	ID        int64
	Name      string
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
	Status    string // planning, ongoing, completed
	CreatedAt time.Time
}
