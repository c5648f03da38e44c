package models

import (
	"time"

	"gorm.io/gorm"
)

// AuthProvider tracks how the account was created
type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
)

type UserRole string

const (
	UserRoleStudent  UserRole = "student"
	UserRoleEducator UserRole = "educator"
)

// User is the account record. Password holds the bcrypt hash and is empty
// for Google-provisioned accounts.
type User struct {
	ID             string         `gorm:"primaryKey;type:uuid" json:"id"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	Password       string         `json:"-"`
	Name           string         `json:"name,omitempty"`
	GoogleID       *string        `gorm:"index" json:"-"`
	ProfilePicture string         `gorm:"type:text" json:"profile_picture,omitempty"`
	AuthProvider   AuthProvider   `gorm:"type:varchar(16);default:'local'" json:"auth_provider"`
	Role           UserRole       `gorm:"type:varchar(16);default:'student'" json:"role"`
	DataConsent    bool           `gorm:"default:false" json:"data_consent"` // DPDP Act compliance
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
