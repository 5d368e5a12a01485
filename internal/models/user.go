package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that can sign in, own history entries and receive assignments
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // bcrypt, never exposed in API
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID.Hex(),
		Username: u.Username,
	}
}

// Credentials is the body of register and login requests
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned after a successful register or login
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
