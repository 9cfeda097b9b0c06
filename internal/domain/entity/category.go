package entity

import "time"

// Category agrupa materiales (cemento, acero, agregados...). Los materiales la referencian sin poseerla.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}
