package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName         string    `gorm:"type:varchar(255);not null"`
	PasswordHash     *string   `gorm:"type:varchar(255)"`
	GoogleId         *string   `gorm:"type:varchar(255);uniqueIndex"`
	RefreshTokenHash *string   `gorm:"type:varchar(64)"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
