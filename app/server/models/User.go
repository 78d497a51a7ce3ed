package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name  string `gorm:"column:name"`              // display name
	Email string `gorm:"column:email;uniqueIndex"` // login key, globally unique

	Password string `gorm:"column:password"` // bcrypt hash, never the raw value

	// External storage credential, populated only after the user links an
	// account. Absence means storage operations must fail, not fall back.
	StorageClientID     string `gorm:"column:storage_client_id"`
	StorageClientSecret string `gorm:"column:storage_client_secret"`
	StorageAccessToken  string `gorm:"column:storage_access_token"`
	StorageRefreshToken string `gorm:"column:storage_refresh_token"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// StorageAuth is the credential quadruple a storage client is built from.
type StorageAuth struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Linked reports whether enough credential material is stored to build a
// storage client. Token-bearing providers store an access token; key-pair
// providers only store a client id/secret, so either form counts.
func (u *User) Linked() bool {
	if u.StorageAccessToken != "" {
		return true
	}
	return u.StorageClientID != "" && u.StorageClientSecret != ""
}

// Credentials returns the stored storage credential, or nil when the user has
// not linked an external account.
func (u *User) Credentials() *StorageAuth {
	if !u.Linked() {
		return nil
	}
	return &StorageAuth{
		ClientID:     u.StorageClientID,
		ClientSecret: u.StorageClientSecret,
		AccessToken:  u.StorageAccessToken,
		RefreshToken: u.StorageRefreshToken,
	}
}
