package taxsetting

type CreateTaxSettingRequest struct {
	Key      string   `json:"key" binding:"required"`
	Value    *float64 `json:"value" binding:"required,gte=0"`
	Category string   `json:"category" binding:"required,oneof=CLT PJ"`
}

type UpdateTaxSettingRequest struct {
	Key      string   `json:"key" binding:"required"`
	Value    *float64 `json:"value" binding:"required,gte=0"`
	Category string   `json:"category" binding:"required,oneof=CLT PJ"`
}

type TaxSettingResponse struct {
	ID       string  `json:"id"`
	Key      string  `json:"key"`
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}
