package handlers

import (
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/models"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/storage"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInfo is the external view of a user record. It never carries the
// password hash or the storage credential secrets.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func userInfo(user *models.User) UserInfo {
	return UserInfo{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}
}

type LoginResponse struct {
	AccessToken string   `json:"accessToken"`
	User        UserInfo `json:"user"`
}

type UserUpdateRequest struct {
	Name     *string             `json:"name"`
	Email    *string             `json:"email"`
	Password *string             `json:"password"`
	Storage  *models.StorageAuth `json:"storageAuth"`
}

type FolderContentResponse struct {
	Data    []storage.Entry `json:"data"`
	Cursor  string          `json:"cursor"`
	HasMore bool            `json:"hasMore"`
}

type UploadResponse struct {
	Path      string `json:"path"`
	PublicURL string `json:"publicUrl,omitempty"`
}

type URLResponse struct {
	PublicURL string `json:"publicUrl"`
}
