package benefit

import "github.com/shopspring/decimal"

type CreateBenefitRequest struct {
	Name  string          `json:"name" binding:"required"`
	Type  string          `json:"type" binding:"required,oneof=FIXED PERCENTAGE"`
	Value decimal.Decimal `json:"value" binding:"required"`
}

type UpdateBenefitRequest struct {
	Name  string          `json:"name" binding:"required"`
	Type  string          `json:"type" binding:"required,oneof=FIXED PERCENTAGE"`
	Value decimal.Decimal `json:"value" binding:"required"`
}

type BenefitResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}
