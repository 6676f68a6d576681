package entity

import "time"

// User is a registered account. Password holds the bcrypt hash.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewUser struct {
	ID       int64
	Name     string
	Email    string
	Password string
}
