package repository

import "github.com/2phishy/phishy-backend/internal/domain/entity"

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
	UpdateLastLogin(id string) error
	Delete(id string) (bool, error)
	List() ([]*entity.User, error)
	ListByRole(role entity.Role) ([]*entity.User, error)
	ListByStatus(status entity.AccountStatus) ([]*entity.User, error)
	Stats() (*entity.UserStats, error)
}
