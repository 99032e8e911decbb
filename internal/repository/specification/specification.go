// Package specification holds composable query filters shared by the
// gorm repositories.
package specification

import "gorm.io/gorm"

// Specification narrows a query. Repositories apply them in order.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Chain applies specs to db in order.
func Chain(db *gorm.DB, specs ...Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}
