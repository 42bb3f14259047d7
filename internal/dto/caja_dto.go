package dto

import "github.com/shopspring/decimal"

type AbrirCajaRequest struct {
	MontoInicialEfectivo      decimal.Decimal `json:"monto_inicial_efectivo"      validate:"min=0"`
	MontoInicialTransferencia decimal.Decimal `json:"monto_inicial_transferencia" validate:"min=0"`
	NotasApertura             string          `json:"notas_apertura"`
}

type CerrarCajaRequest struct {
	MontoFinalEfectivo      decimal.Decimal `json:"monto_final_efectivo"      validate:"min=0"`
	MontoFinalTransferencia decimal.Decimal `json:"monto_final_transferencia" validate:"min=0"`
	NotasCierre             string          `json:"notas_cierre"`
}

type CajaResponse struct {
	ID                        string           `json:"id"`
	Estado                    string           `json:"estado"`
	UsuarioAperturaID         string           `json:"usuario_apertura_id"`
	UsuarioCierreID           *string          `json:"usuario_cierre_id,omitempty"`
	FechaApertura             string           `json:"fecha_apertura"`
	FechaCierre               *string          `json:"fecha_cierre,omitempty"`
	MontoInicialEfectivo      decimal.Decimal  `json:"monto_inicial_efectivo"`
	MontoInicialTransferencia decimal.Decimal  `json:"monto_inicial_transferencia"`
	MontoFinalEfectivo        *decimal.Decimal `json:"monto_final_efectivo,omitempty"`
	MontoFinalTransferencia   *decimal.Decimal `json:"monto_final_transferencia,omitempty"`
	DiferenciaEfectivo        *decimal.Decimal `json:"diferencia_efectivo,omitempty"`
	DiferenciaTransferencia   *decimal.Decimal `json:"diferencia_transferencia,omitempty"`
	NotasApertura             string           `json:"notas_apertura,omitempty"`
	NotasCierre               string           `json:"notas_cierre,omitempty"`
}

// ResumenCajaResponse is the live movement summary of an open session.
type ResumenCajaResponse struct {
	Caja                  CajaResponse    `json:"caja"`
	IngresosEfectivo      decimal.Decimal `json:"ingresos_efectivo"`
	IngresosTransferencia decimal.Decimal `json:"ingresos_transferencia"`
	EgresosEfectivo       decimal.Decimal `json:"egresos_efectivo"`
	EgresosTransferencia  decimal.Decimal `json:"egresos_transferencia"`
	TeoricoEfectivo       decimal.Decimal `json:"teorico_efectivo"`
	TeoricoTransferencia  decimal.Decimal `json:"teorico_transferencia"`
	CantidadPagos         int             `json:"cantidad_pagos"`
}

type CajaFilter struct {
	Estado string `form:"estado"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
