package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles de usuario.
const (
	RolAdmin   = "admin"
	RolUsuario = "usuario"
)

// Usuario almacena las cuentas del sistema con acceso basado en rol.
// PasswordHash nunca viaja en respuestas ni aparece en logs.
type Usuario struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username      string    `gorm:"uniqueIndex;not null"`
	Email         string    `gorm:"uniqueIndex;not null"`
	Telefono      string    `gorm:"type:varchar(15);not null"`
	PasswordHash  string    `gorm:"not null"`
	Rol           string    `gorm:"type:varchar(20);not null;default:'usuario'"`
	Activo        bool      `gorm:"not null;default:true"`
	FechaCreacion time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt     time.Time
}

func (Usuario) TableName() string { return "usuarios" }
