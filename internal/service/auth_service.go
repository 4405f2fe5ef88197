package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gestinv/internal/dto"
	"gestinv/internal/model"
	"gestinv/internal/repository"
)

const bcryptCost = 12

// AuthService cubre registro, login con JWT, refresco de tokens y la
// administración de cuentas.
type AuthService interface {
	Registrar(ctx context.Context, req dto.RegistroRequest) (*dto.UsuarioResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CambiarContrasena(ctx context.Context, usuarioID uuid.UUID, req dto.CambiarContrasenaRequest) error
	Perfil(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context) ([]dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo          repository.UsuarioRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(repo repository.UsuarioRepository, jwtSecret string, accessHours, refreshHours int) AuthService {
	return &authService{
		repo:          repo,
		jwtSecret:     jwtSecret,
		accessExpiry:  time.Duration(accessHours) * time.Hour,
		refreshExpiry: time.Duration(refreshHours) * time.Hour,
	}
}

func (s *authService) Registrar(ctx context.Context, req dto.RegistroRequest) (*dto.UsuarioResponse, error) {
	if _, err := s.repo.ObtenerPorUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("ya existe un usuario con el username '%s': %w", req.Username, ErrConflicto)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.ObtenerPorEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("ya existe un usuario con el email '%s': %w", req.Email, ErrConflicto)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Contrasena), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("generando hash de contrasena: %w", err)
	}

	rol := req.Rol
	if rol == "" {
		rol = model.RolUsuario
	}

	usuario := &model.Usuario{
		Username:     req.Username,
		Email:        req.Email,
		Telefono:     req.Telefono,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	if err := s.repo.Crear(ctx, usuario); err != nil {
		return nil, fmt.Errorf("creando usuario: %w", err)
	}
	return usuarioToResponse(usuario), nil
}

// Login acepta username o email como identificador. Credenciales erróneas y
// usuario inexistente responden lo mismo para no filtrar cuentas.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := s.repo.ObtenerPorUsername(ctx, req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		usuario, err = s.repo.ObtenerPorEmail(ctx, req.Username)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredencialesInvalidas
		}
		return nil, err
	}
	if !usuario.Activo {
		return nil, ErrUsuarioInactivo
	}
	if bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrCredencialesInvalidas
	}
	return s.emitirTokens(usuario)
}

// Refresh emite un nuevo par de tokens a partir de un refresh token vigente.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("metodo de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrCredencialesInvalidas
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["token_type"] != "refresh" {
		return nil, ErrCredencialesInvalidas
	}
	rawID, _ := claims["user_id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}

	usuario, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}
	if !usuario.Activo {
		return nil, ErrUsuarioInactivo
	}
	return s.emitirTokens(usuario)
}

func (s *authService) CambiarContrasena(ctx context.Context, usuarioID uuid.UUID, req dto.CambiarContrasenaRequest) error {
	usuario, err := s.repo.ObtenerPorID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.ContrasenaActual)) != nil {
		return ErrContrasenaIncorrecta
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NuevaContrasena), bcryptCost)
	if err != nil {
		return fmt.Errorf("generando hash de contrasena: %w", err)
	}
	usuario.PasswordHash = string(hash)
	return s.repo.Actualizar(ctx, usuario)
}

func (s *authService) Perfil(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return usuarioToResponse(usuario), nil
}

func (s *authService) Listar(ctx context.Context) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		out = append(out, *usuarioToResponse(&usuarios[i]))
	}
	return out, nil
}

func (s *authService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	if req.Email != nil {
		usuario.Email = *req.Email
	}
	if req.Telefono != nil {
		usuario.Telefono = *req.Telefono
	}
	if req.Rol != nil {
		usuario.Rol = *req.Rol
	}
	if req.Activo != nil {
		usuario.Activo = *req.Activo
	}
	if req.Contrasena != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Contrasena), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("generando hash de contrasena: %w", err)
		}
		usuario.PasswordHash = string(hash)
	}

	if err := s.repo.Actualizar(ctx, usuario); err != nil {
		return nil, fmt.Errorf("actualizando usuario: %w", err)
	}
	return usuarioToResponse(usuario), nil
}

// Desactivar marca la cuenta como inactiva; los registros no se borran.
func (s *authService) Desactivar(ctx context.Context, id uuid.UUID) error {
	usuario, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}
	usuario.Activo = false
	return s.repo.Actualizar(ctx, usuario)
}

func (s *authService) emitirTokens(u *model.Usuario) (*dto.LoginResponse, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    u.ID.String(),
		"username":   u.Username,
		"email":      u.Email,
		"rol":        u.Rol,
		"token_type": "access",
		"iat":        now.Unix(),
		"exp":        now.Add(s.accessExpiry).Unix(),
	})
	accessToken, err := access.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("firmando access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    u.ID.String(),
		"token_type": "refresh",
		"iat":        now.Unix(),
		"exp":        now.Add(s.refreshExpiry).Unix(),
	})
	refreshToken, err := refresh.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("firmando refresh token: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.accessExpiry.Seconds()),
		Rol:          u.Rol,
		Username:     u.Username,
		Email:        u.Email,
	}, nil
}

// SembrarAdmin crea la cuenta administradora o la repara si ya existe:
// restablece contrasena y rol y la reactiva. Lo usa cmd/seedadmin.
func SembrarAdmin(ctx context.Context, repo repository.UsuarioRepository, username, email, telefono, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("generando hash de contrasena: %w", err)
	}

	usuario, err := repo.ObtenerPorUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.Crear(ctx, &model.Usuario{
			Username:     username,
			Email:        email,
			Telefono:     telefono,
			PasswordHash: string(hash),
			Rol:          model.RolAdmin,
			Activo:       true,
		})
	}
	if err != nil {
		return err
	}

	usuario.PasswordHash = string(hash)
	usuario.Rol = model.RolAdmin
	usuario.Activo = true
	return repo.Actualizar(ctx, usuario)
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:            u.ID.String(),
		Username:      u.Username,
		Email:         u.Email,
		Telefono:      u.Telefono,
		Rol:           u.Rol,
		Activo:        u.Activo,
		FechaCreacion: u.FechaCreacion.Format("2006-01-02T15:04:05Z07:00"),
	}
}
