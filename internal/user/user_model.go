package user

import (
	"time"

	"github.com/DhavalSuthar-24/socialsoccer/internal/address"
)

// User is an account. FirstName and LastName hold ciphertext.
type User struct {
	ID            string           `gorm:"primaryKey;size:24" json:"id"`
	Email         string           `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string           `gorm:"not null" json:"-"`
	EmailVerified bool             `gorm:"not null;default:false" json:"email_verified"`
	FirstName     *string          `json:"-"`
	LastName      *string          `json:"-"`
	AddressID     *uint            `json:"address_id,omitempty"`
	Address       *address.Address `gorm:"foreignKey:AddressID" json:"-"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// PlayerSummary is the public view of a user inside game rosters and request lists.
type PlayerSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type UpdateNamesRequest struct {
	FirstName string `json:"firstName" binding:"required,min=1,max=60"`
	LastName  string `json:"lastName" binding:"required,min=1,max=60"`
}

// ProfileResponse is the decrypted profile returned to its owner.
type ProfileResponse struct {
	ID            string                   `json:"id"`
	Email         string                   `json:"email"`
	EmailVerified bool                     `json:"email_verified"`
	FirstName     string                   `json:"first_name"`
	LastName      string                   `json:"last_name"`
	Address       *address.AddressResponse `json:"address,omitempty"`
	Complete      bool                     `json:"complete"`
}
