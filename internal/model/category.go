// Package model defines the domain types shared across the application.
package model

import "time"

// Category is a named spending bucket with its keyword triggers.
// Seed categories are created at startup and marked IsDefault; further
// categories are created on demand by the categorizer, seeded with the
// description that produced them.
type Category struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Icon      string
	Color     string
	Keywords  []string
	IsDefault bool
}
