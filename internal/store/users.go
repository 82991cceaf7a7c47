// Package store is the persistence layer for users. Every call takes the
// request context; WithTx scopes a group of calls to one transaction.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vaughan-dsouza/userapi/internal/models"
)

var ErrNotFound = errors.New("not found")

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, user *models.User) error

	// WithTx runs fn against a transaction-bound store. The transaction
	// commits when fn returns nil and rolls back on error or panic.
	WithTx(ctx context.Context, fn func(tx UserStore) error) error
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) take(ctx context.Context, conds ...interface{}) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Take(&u, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &u, nil
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.take(ctx, "email = ?", email)
}

func (s *GormUserStore) FindByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	return s.take(ctx, "email = ? AND password = ?", email, password)
}

func (s *GormUserStore) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.take(ctx, "id = ?", id)
}

func (s *GormUserStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *GormUserStore) Delete(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Delete(user).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *GormUserStore) WithTx(ctx context.Context, fn func(tx UserStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormUserStore{db: tx})
	})
}
