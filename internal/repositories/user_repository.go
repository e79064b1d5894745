package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"arogyachain-server/internal/models"
)

// UserRepositoryContract defines the user lookups the record pipeline needs.
type UserRepositoryContract interface {
	FindPatientByEmail(ctx context.Context, email string) (*models.User, error)
}

// Compile-time check
var _ UserRepositoryContract = (*UserRepository)(nil)

// UserRepository is the gorm-backed implementation of UserRepositoryContract.
type UserRepository struct {
	DB *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// FindPatientByEmail resolves an email to a patient-role user. A user that
// exists under another role is reported as not found, same as a missing one.
func (r *UserRepository) FindPatientByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("email = ? AND role = ?", email, models.RolePatient).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
