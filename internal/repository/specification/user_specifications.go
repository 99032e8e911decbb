package specification

import (
	"strings"

	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByUsername compares against the stored lowercase form.
type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", strings.ToLower(s.Username))
}

// ByUsernameOrEmail matches either identifier; empty values are ignored.
type ByUsernameOrEmail struct {
	Username string
	Email    string
}

func (s ByUsernameOrEmail) Apply(db *gorm.DB) *gorm.DB {
	switch {
	case s.Username != "" && s.Email != "":
		return db.Where("username = ? OR email = ?", strings.ToLower(s.Username), s.Email)
	case s.Username != "":
		return db.Where("username = ?", strings.ToLower(s.Username))
	default:
		return db.Where("email = ?", s.Email)
	}
}

type ByGoogleID struct {
	GoogleID string
}

func (s ByGoogleID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("google_id = ?", s.GoogleID)
}
