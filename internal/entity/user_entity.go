package entity

import (
	"time"
)

type User struct {
	Id        uint
	Email     string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
