package entity

import "time"

// Company representa una empresa (tenant). Productos, bodegas, usuarios y
// todo el ledger quedan cercados por su CompanyID.
type Company struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
