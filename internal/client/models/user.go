// Package models defines the client-side view of users and tasks as returned
// by the taskkeeper API.
package models

import "time"

type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) String() string {
	return u.FullName + " <" + u.Email + ">"
}
