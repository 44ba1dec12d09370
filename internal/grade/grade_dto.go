package grade

type CreateGradeRequest struct {
	Name      string   `json:"name" binding:"required"`
	MinPoints *float64 `json:"min_points" binding:"required,gte=0"`
	MaxPoints *float64 `json:"max_points" binding:"required,gte=0"`
}

type UpdateGradeRequest struct {
	Name      string   `json:"name" binding:"required"`
	MinPoints *float64 `json:"min_points" binding:"required,gte=0"`
	MaxPoints *float64 `json:"max_points" binding:"required,gte=0"`
}

type GradeResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	MinPoints float64 `json:"min_points"`
	MaxPoints float64 `json:"max_points"`
}

type ResolveGradeResponse struct {
	Points float64        `json:"points"`
	Grade  *GradeResponse `json:"grade"`
}
