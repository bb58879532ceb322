package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error // asigna ID
	GetByEmail(email string) (*entity.User, error)
	GetByID(id int64) (*entity.User, error)
}
