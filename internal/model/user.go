package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role controls what a staff account may administer.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// RoleFromString maps a requested role onto a known one. Anything that is
// not exactly "admin" becomes staff.
func RoleFromString(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleStaff
}

// User is a clinic staff account. The password hash and reset token never
// leave the server.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         Role               `bson:"role" json:"role"`

	ResetToken       *string    `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetTokenExpiry *time.Time `bson:"resetPasswordExpiry,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
