package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// User is a registered account. Password holds a bcrypt hash and never leaves the process.
type User struct {
	ID       string `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Username string `json:"username" db:"username" gorm:"type:text;not null;index:idx_user_username"`
	Password string `json:"-" db:"password" gorm:"type:text;not null"`
}

// UserInput is the registration payload.
type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in UserInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, notBlank, validation.RuneLength(3, 50)),
		validation.Field(&in.Password, validation.Required, validation.Length(8, 72)),
	)
}
