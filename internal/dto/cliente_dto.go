package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=120"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Telefono *string `json:"telefono" validate:"omitempty,max=30"`
	Notas    *string `json:"notas"    validate:"omitempty,max=500"`
}

type ActualizarClienteRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2,max=120"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Telefono *string `json:"telefono" validate:"omitempty,max=30"`
	Notas    *string `json:"notas"    validate:"omitempty,max=500"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// ClienteFilter supports the client-lookup search box: Busqueda matches
// nombre, email, or telefono by case-insensitive substring.
type ClienteFilter struct {
	Busqueda string `form:"busqueda"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID       string  `json:"id"`
	Nombre   string  `json:"nombre"`
	Email    *string `json:"email"`
	Telefono *string `json:"telefono"`
	Notas    *string `json:"notas"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
