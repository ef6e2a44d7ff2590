package models

import "time"

// Account is a resident (or administrator) in the member directory.
type Account struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Address      string    `json:"Address"`
	RoomNo       string    `json:"roomNo"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"date"`
}
