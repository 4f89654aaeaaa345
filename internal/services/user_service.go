package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/titoscorner/backend/internal/cache"
	"github.com/titoscorner/backend/internal/models"
	"github.com/titoscorner/backend/pkg/crypto"
)

const userResource = "users"

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user service: user not found")
	// ErrEmailTaken indicates the email address is already registered.
	ErrEmailTaken = errors.New("user service: email already registered")
	// ErrInvalidLogin indicates the email/password pair did not match.
	ErrInvalidLogin = errors.New("user service: invalid credentials")
)

// UserService manages registration, authentication and account CRUD.
type UserService struct {
	db    *gorm.DB
	cache *cache.Manager
}

// NewUserService constructs a user service once a database handle is supplied.
func NewUserService(db *gorm.DB, cacheMgr *cache.Manager) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db, cache: cacheMgr}, nil
}

// RegisterUserInput captures required fields when creating an account.
type RegisterUserInput struct {
	Fullname    string
	Email       string
	Nationality string
	Password    string
}

// UpdateUserInput describes mutable account fields. A nil pointer indicates no change.
type UpdateUserInput struct {
	Fullname    *string
	Email       *string
	Nationality *string
	Password    *string
	IsAdmin     *bool
}

// Register creates an account with a bcrypt password hash.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (models.User, error) {
	ctx = ensuredContext(ctx)

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Fullname:    strings.TrimSpace(input.Fullname),
		Email:       normaliseEmail(input.Email),
		Nationality: strings.TrimSpace(input.Nationality),
		Password:    hash,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	s.cache.Invalidate(ctx, userResource, "")
	return user, nil
}

// Authenticate checks an email/password pair. It always reads the primary
// store because password hashes are never serialised into the cache.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	ctx = ensuredContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", normaliseEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidLogin
		}
		return models.User{}, err
	}

	if !crypto.VerifyPassword(user.Password, password) {
		return models.User{}, ErrInvalidLogin
	}
	return user, nil
}

// List retrieves one page of accounts, newest first.
func (s *UserService) List(ctx context.Context, req cache.PageRequest) (cache.PageResult[models.User], error) {
	ctx = ensuredContext(ctx)
	req = normalizePage(req, DefaultListLimit)

	return cache.FetchList(ctx, s.cache, userResource, req, func(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
		var total int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
			return nil, 0, err
		}

		var rows []models.User
		if err := s.db.WithContext(ctx).
			Order("created_at DESC").
			Offset(offset).Limit(limit).
			Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		return rows, total, nil
	})
}

// Get returns a single account by id.
func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	ctx = ensuredContext(ctx)

	return cache.FetchOne(ctx, s.cache, userResource, id, func(ctx context.Context) (models.User, error) {
		var user models.User
		if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.User{}, ErrUserNotFound
			}
			return models.User{}, err
		}
		return user, nil
	})
}

// Update applies the non-nil fields, re-hashing the password when it changes.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (models.User, error) {
	ctx = ensuredContext(ctx)

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if input.Fullname != nil {
		user.Fullname = strings.TrimSpace(*input.Fullname)
	}
	if input.Email != nil {
		user.Email = normaliseEmail(*input.Email)
	}
	if input.Nationality != nil {
		user.Nationality = strings.TrimSpace(*input.Nationality)
	}
	if input.Password != nil {
		hash, err := crypto.HashPassword(*input.Password)
		if err != nil {
			return models.User{}, err
		}
		user.Password = hash
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	s.cache.Invalidate(ctx, userResource, id)
	return user, nil
}

// Delete removes an account. Deleting an unknown id reports not found.
func (s *UserService) Delete(ctx context.Context, id string) error {
	ctx = ensuredContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	s.cache.Invalidate(ctx, userResource, id)
	return nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
