package services

import (
	"context"
	"strings"
	"sync"

	"gorm.io/gorm"

	"inkwell/internal/apperr"
	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/utils"
)

const invalidCredentials = "Invalid credentials"

type RegisterInput struct {
	Name     string `json:"name" validate:"required,notblank,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// IdentityService registers users and checks their credentials. Issuing
// the session for the returned identity is left to the transport.
type IdentityService struct {
	db *gorm.DB

	// dummyHash is compared against when the email is unknown so both
	// login failures cost the same.
	dummyHash func() string
}

func NewIdentityService(conn *gorm.DB) *IdentityService {
	return &IdentityService{
		db: conn,
		dummyHash: sync.OnceValue(func() string {
			hash, _ := utils.HashPassword("inkwell-timing-equalizer")
			return hash
		}),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (models.Identity, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(&in); err != nil {
		return models.Identity{}, err
	}

	conn := s.db.WithContext(ctx)
	var count int64
	if err := conn.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return models.Identity{}, apperr.Internal(err)
	}
	if count > 0 {
		return models.Identity{}, apperr.Conflict("Email in use")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.Identity{}, apperr.Internal(err)
	}

	user := models.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := conn.Create(&user).Error; err != nil {
		// lost a race with a concurrent registration
		if db.IsDuplicateKey(err) {
			return models.Identity{}, apperr.Conflict("Email in use")
		}
		return models.Identity{}, apperr.Internal(err)
	}
	return user.Identity(), nil
}

// Login verifies credentials. An unknown email and a wrong password fail
// with the same error.
func (s *IdentityService) Login(ctx context.Context, in LoginInput) (models.Identity, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(&in); err != nil {
		return models.Identity{}, err
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", in.Email).First(&user).Error
	if err != nil {
		if db.IsNotFound(err) {
			utils.CheckPasswordHash(in.Password, s.dummyHash())
			return models.Identity{}, apperr.Unauthenticated(invalidCredentials)
		}
		return models.Identity{}, apperr.Internal(err)
	}

	if !utils.CheckPasswordHash(in.Password, user.Password) {
		return models.Identity{}, apperr.Unauthenticated(invalidCredentials)
	}
	return user.Identity(), nil
}

// Me returns the caller's profile without the password hash.
func (s *IdentityService) Me(ctx context.Context, userID uint) (models.Profile, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		if db.IsNotFound(err) {
			return models.Profile{}, apperr.NotFound("User not found")
		}
		return models.Profile{}, apperr.Internal(err)
	}
	return user.Profile(), nil
}
