package employee

import (
	"github.com/shopspring/decimal"

	"go-cargos-salarios/internal/benefit"
)

type CreateEmployeeRequest struct {
	Name       string           `json:"name" binding:"required"`
	Salary     *decimal.Decimal `json:"salary" binding:"required"`
	HiringType string           `json:"hiringType" binding:"required,oneof=CLT PJ"`
	JobRoleID  *string          `json:"jobRoleId" binding:"omitempty,uuid"`
	BenefitIDs []string         `json:"benefitIds" binding:"omitempty,dive,uuid"`
}

type UpdateEmployeeRequest struct {
	Name       string           `json:"name" binding:"required"`
	Salary     *decimal.Decimal `json:"salary" binding:"required"`
	HiringType string           `json:"hiringType" binding:"required,oneof=CLT PJ"`
	JobRoleID  *string          `json:"jobRoleId" binding:"omitempty,uuid"`
}

type ReplaceBenefitsRequest struct {
	BenefitIDs []string `json:"benefitIds" binding:"required,dive,uuid"`
}

type EmployeeResponse struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	Salary     decimal.Decimal           `json:"salary"`
	HiringType string                    `json:"hiringType"`
	JobRoleID  *string                   `json:"jobRoleId,omitempty"`
	Benefits   []benefit.BenefitResponse `json:"benefits"`
}
