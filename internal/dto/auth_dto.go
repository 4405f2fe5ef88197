package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistroRequest struct {
	Username   string `json:"username"   validate:"required,min=1,max=150"`
	Email      string `json:"email"      validate:"required,email"`
	Telefono   string `json:"telefono"   validate:"required,max=15"`
	Rol        string `json:"rol"        validate:"omitempty,oneof=admin usuario"`
	Contrasena string `json:"contrasena" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CambiarContrasenaRequest struct {
	ContrasenaActual string `json:"contrasena_actual" validate:"required"`
	NuevaContrasena  string `json:"nueva_contrasena"  validate:"required,min=8"`
}

type ActualizarUsuarioRequest struct {
	Email      *string `json:"email"      validate:"omitempty,email"`
	Telefono   *string `json:"telefono"   validate:"omitempty,max=15"`
	Rol        *string `json:"rol"        validate:"omitempty,oneof=admin usuario"`
	Activo     *bool   `json:"activo"`
	Contrasena *string `json:"contrasena" validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UsuarioResponse nunca incluye la contraseña ni su hash.
type UsuarioResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Telefono      string `json:"telefono"`
	Rol           string `json:"rol"`
	Activo        bool   `json:"activo"`
	FechaCreacion string `json:"fecha_creacion"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // seconds
	Rol          string `json:"rol"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}
