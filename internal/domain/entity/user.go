package entity

import "time"

// Roles permitidos para usuarios.
const (
	RoleUser         = "user"
	RoleAdmin        = "admin"
	RoleOwnerCompany = "owner_company"
)

// User representa un usuario de la aplicación, siempre asociado a una empresa.
type User struct {
	ID           int64
	CompanyID    int64
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

// FullName nombre para mostrar (se incluye en el token JWT).
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
