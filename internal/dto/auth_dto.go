package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=100"`
	Password string  `json:"password" validate:"required,min=4"`
	Rol      string  `json:"rol"      validate:"required,oneof=vendedor admin"`
	Sucursal *string `json:"sucursal"`
}

type ActualizarUsuarioRequest struct {
	Nombre   string  `json:"nombre"`
	Password string  `json:"password"`
	Rol      string  `json:"rol"      validate:"omitempty,oneof=vendedor admin"`
	Sucursal *string `json:"sucursal"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Nombre   string  `json:"nombre"`
	Rol      string  `json:"rol"`
	Sucursal *string `json:"sucursal"`
	Activo   bool    `json:"activo"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}
