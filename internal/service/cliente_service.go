package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alquilapp/internal/apierror"
	"alquilapp/internal/dto"
	"alquilapp/internal/model"
	"alquilapp/internal/repository"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*model.Cliente, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	Listar(ctx context.Context, f dto.ClienteFilter) ([]model.Cliente, int64, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*model.Cliente, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	clientes repository.ClienteRepository
}

func NewClienteService(clientes repository.ClienteRepository) ClienteService {
	return &clienteService{clientes: clientes}
}

var (
	dniRe    = regexp.MustCompile(`^\d{7,8}$`)
	cuitRe   = regexp.MustCompile(`^\d{11}$`)
	noDigito = regexp.MustCompile(`\D`)
)

// ValidarDNI accepts 7 or 8 digit documents.
func ValidarDNI(dni string) bool { return dniRe.MatchString(dni) }

// ValidarCUIT checks 11 digits plus the módulo 11 check digit.
func ValidarCUIT(cuit string) bool {
	if !cuitRe.MatchString(cuit) {
		return false
	}
	multiplicadores := [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}
	suma := 0
	for i := 0; i < 10; i++ {
		suma += int(cuit[i]-'0') * multiplicadores[i]
	}
	mod := suma % 11
	var verificador int
	switch mod {
	case 0:
		verificador = 0
	case 1:
		verificador = 9
	default:
		verificador = 11 - mod
	}
	return verificador == int(cuit[10]-'0')
}

// ValidarTelefonoAR accepts Argentine numbers: 10 national digits or 54-prefixed
// international with or without the mobile 9.
func ValidarTelefonoAR(valor string) bool {
	nums := noDigito.ReplaceAllString(valor, "")
	if strings.HasPrefix(nums, "54") && len(nums) >= 12 && len(nums) <= 13 {
		return true
	}
	if len(nums) == 10 {
		return strings.HasPrefix(nums, "11") || strings.HasPrefix(nums, "2") || strings.HasPrefix(nums, "3")
	}
	return false
}

func (s *clienteService) validarDatos(dni string, cuit *string, telefono string) error {
	fields := map[string]string{}
	if !ValidarDNI(dni) {
		fields["dni"] = "DNI inválido: se esperan 7 u 8 dígitos"
	}
	if cuit != nil && *cuit != "" && !ValidarCUIT(*cuit) {
		fields["cuit"] = "CUIT inválido: falla el dígito verificador"
	}
	if !ValidarTelefonoAR(telefono) {
		fields["telefono"] = "Teléfono inválido para Argentina"
	}
	if len(fields) > 0 {
		return apierror.ValidationFields(fields)
	}
	return nil
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*model.Cliente, error) {
	if err := s.validarDatos(req.DNI, req.CUIT, req.Telefono); err != nil {
		return nil, err
	}
	if _, err := s.clientes.FindByDNI(ctx, req.DNI); err == nil {
		return nil, apierror.Conflict("Ya existe un cliente con DNI %s", req.DNI)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cliente := &model.Cliente{
		Nombre:      strings.TrimSpace(req.Nombre),
		Apellido:    strings.TrimSpace(req.Apellido),
		DNI:         req.DNI,
		CUIT:        req.CUIT,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Calle:       strings.TrimSpace(req.Calle),
		NumeroCalle: strings.TrimSpace(req.NumeroCalle),
		Activo:      true,
	}
	if err := s.clientes.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return cliente, nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, err := s.clientes.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Cliente no encontrado")
	}
	return c, err
}

func (s *clienteService) Listar(ctx context.Context, f dto.ClienteFilter) ([]model.Cliente, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.clientes.List(ctx, f)
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*model.Cliente, error) {
	cliente, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		cliente.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Apellido != nil {
		cliente.Apellido = strings.TrimSpace(*req.Apellido)
	}
	if req.CUIT != nil {
		cliente.CUIT = req.CUIT
	}
	if req.Telefono != nil {
		cliente.Telefono = *req.Telefono
	}
	if req.Email != nil {
		cliente.Email = req.Email
	}
	if req.Calle != nil {
		cliente.Calle = strings.TrimSpace(*req.Calle)
	}
	if req.NumeroCalle != nil {
		cliente.NumeroCalle = strings.TrimSpace(*req.NumeroCalle)
	}
	if req.Activo != nil {
		cliente.Activo = *req.Activo
	}

	if err := s.validarDatos(cliente.DNI, cliente.CUIT, cliente.Telefono); err != nil {
		return nil, err
	}
	if err := s.clientes.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return cliente, nil
}

// Desactivar is a soft delete: history referencing the client survives.
func (s *clienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	cliente, err := s.Obtener(ctx, id)
	if err != nil {
		return err
	}
	cliente.Activo = false
	return s.clientes.Update(ctx, cliente)
}
