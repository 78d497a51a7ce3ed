package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Gorm struct {
	db       *gorm.DB
	hashCost int
}

var _ Directory = (*Gorm)(nil)

func NewGorm(db *gorm.DB, hashCost int) *Gorm {
	return &Gorm{db: db, hashCost: hashCost}
}

func (g *Gorm) Create(ctx context.Context, name, email, rawPassword string) (*models.User, error) {
	email = NormalizeEmail(email)

	// Check-then-create; the unique index on email catches the narrow race.
	if _, err := g.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), g.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := g.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (g *Gorm) FindByID(ctx context.Context, id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var user models.User
	if err := g.db.WithContext(ctx).First(&user, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

func (g *Gorm) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := g.db.WithContext(ctx).First(&user, "email = ?", NormalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

func (g *Gorm) Update(ctx context.Context, id string, patch *Patch) error {
	user, err := g.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := applyPatch(user, patch, g.hashCost); err != nil {
		return err
	}

	if err := g.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func applyPatch(user *models.User, patch *Patch, hashCost int) error {
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = NormalizeEmail(*patch.Email)
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), hashCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}
	if patch.Storage != nil {
		user.StorageClientID = patch.Storage.ClientID
		user.StorageClientSecret = patch.Storage.ClientSecret
		user.StorageAccessToken = patch.Storage.AccessToken
		user.StorageRefreshToken = patch.Storage.RefreshToken
	}
	return nil
}
