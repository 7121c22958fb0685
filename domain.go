package main

import (
	"time"
)

type User struct {
	Id           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Expense struct {
	Id        string    `json:"id"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Notes     *string   `json:"notes"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the subject extracted from a verified session token.
type Identity struct {
	UserId string
	Email  string
}
