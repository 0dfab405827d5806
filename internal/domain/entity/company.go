package entity

import "time"

// Company representa una empresa compradora registrada en el portal mayorista.
// El mayorista opera como una empresa más, con usuarios de rol admin.
type Company struct {
	ID        string
	Name      string
	NIT       string // identificación tributaria (con o sin dígito de verificación)
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
