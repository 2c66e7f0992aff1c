package models

import (
	"strings"

	"gorm.io/gorm"
)

// User mirrors the external identity that owns accounts, transactions
// and budgets. The ID is issued by the identity provider.
type User struct {
	ID    string `json:"id" gorm:"primaryKey" example:"user_2abc3def"`
	Name  string `json:"name" example:"Ada"`
	Email string `json:"email" example:"ada@example.com"`
	Timestamps
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)

	if u.Email == "" {
		return ErrEmailRequired
	}

	return nil
}
