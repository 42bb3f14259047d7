package dto

type CrearClienteRequest struct {
	Nombre      string  `json:"nombre"       validate:"required,min=2,max=100"`
	Apellido    string  `json:"apellido"     validate:"required,min=2,max=100"`
	DNI         string  `json:"dni"          validate:"required,numeric,min=7,max=8"`
	CUIT        *string `json:"cuit"         validate:"omitempty,len=11,numeric"`
	Telefono    string  `json:"telefono"     validate:"required,min=6,max=20"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Calle       string  `json:"calle"        validate:"required"`
	NumeroCalle string  `json:"numero_calle" validate:"required"`
}

type ActualizarClienteRequest struct {
	Nombre      *string `json:"nombre"       validate:"omitempty,min=2,max=100"`
	Apellido    *string `json:"apellido"     validate:"omitempty,min=2,max=100"`
	CUIT        *string `json:"cuit"         validate:"omitempty,len=11,numeric"`
	Telefono    *string `json:"telefono"     validate:"omitempty,min=6,max=20"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Calle       *string `json:"calle"`
	NumeroCalle *string `json:"numero_calle"`
	Activo      *bool   `json:"activo"`
}

type ClienteResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Apellido    string  `json:"apellido"`
	DNI         string  `json:"dni"`
	CUIT        *string `json:"cuit,omitempty"`
	Telefono    string  `json:"telefono"`
	Email       *string `json:"email,omitempty"`
	Calle       string  `json:"calle"`
	NumeroCalle string  `json:"numero_calle"`
	Activo      bool    `json:"activo"`
}

type ClienteFilter struct {
	Buscar string `form:"buscar"`
	Activo *bool  `form:"activo"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
