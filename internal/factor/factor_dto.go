package factor

type CreateFactorLevelRequest struct {
	Level  int `json:"level" binding:"required,gte=1"`
	Points int `json:"points" binding:"gte=0"`
}

type CreateFactorRequest struct {
	Name   string                     `json:"name" binding:"required"`
	Weight float64                    `json:"weight" binding:"required,gt=0"`
	Levels []CreateFactorLevelRequest `json:"levels" binding:"dive"`
}

type UpdateFactorRequest struct {
	Name   string                     `json:"name" binding:"required"`
	Weight float64                    `json:"weight" binding:"required,gt=0"`
	Levels []CreateFactorLevelRequest `json:"levels" binding:"dive"`
}

type FactorLevelResponse struct {
	ID     string `json:"id"`
	Level  int    `json:"level"`
	Points int    `json:"points"`
}

type FactorResponse struct {
	ID     string                `json:"id"`
	Name   string                `json:"name"`
	Weight float64               `json:"weight"`
	Levels []FactorLevelResponse `json:"levels"`
}
