package model

import "time"

// User is a registered identity. Login is the immutable business key used by
// every other table; ID only exists as a surrogate primary key.
type User struct {
	ID           string  `gorm:"primaryKey;type:varchar(36)"`
	Login        string  `gorm:"type:varchar(30);uniqueIndex;not null" validate:"required,login"`
	Email        string  `gorm:"type:varchar(50);uniqueIndex;not null" validate:"required,max=50"`
	PasswordHash string  `gorm:"not null"`
	CountryCode  string  `gorm:"type:varchar(2);not null" validate:"required,len=2"`
	IsPublic     bool    `gorm:"not null"`
	Phone        *string `gorm:"uniqueIndex" validate:"omitempty,phone"`
	Image        *string `gorm:"type:varchar(200)" validate:"omitempty,max=200"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }
