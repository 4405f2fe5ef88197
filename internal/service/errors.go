package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Errores de dominio que los handlers traducen a códigos HTTP.
var (
	ErrNoEncontrado          = errors.New("recurso no encontrado")
	ErrConflicto             = errors.New("conflicto con un registro existente")
	ErrStockInsuficiente     = errors.New("stock insuficiente para la cantidad solicitada")
	ErrFechaInvalida         = errors.New("formato de fecha invalido, se espera AAAA-MM-DD")
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")
	ErrContrasenaIncorrecta  = errors.New("la contrasena actual no es correcta")
	ErrUsuarioInactivo       = errors.New("el usuario esta desactivado")
)

const formatoFecha = "2006-01-02"

// parseFecha convierte texto AAAA-MM-DD en fecha. Cualquier otro formato se
// rechaza con ErrFechaInvalida.
func parseFecha(s string) (time.Time, error) {
	t, err := time.Parse(formatoFecha, s)
	if err != nil {
		return time.Time{}, ErrFechaInvalida
	}
	return t, nil
}

// parseFechaOpt acepta un puntero opcional proveniente de un DTO.
func parseFechaOpt(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseFecha(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatFechaOpt(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(formatoFecha)
	return &s
}

// runTx ejecuta fn dentro de una transacción. Con db nil (pruebas unitarias
// contra repos en memoria) ejecuta fn directamente con tx nil.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
