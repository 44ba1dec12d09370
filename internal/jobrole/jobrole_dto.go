package jobrole

type CreateJobRoleRequest struct {
	Title      string `json:"title" binding:"required"`
	Department string `json:"department"`
}

type UpdateJobRoleRequest struct {
	Title      string `json:"title" binding:"required"`
	Department string `json:"department"`
}

// ScoreJobRequest maps factor id -> chosen factor level id. The whole score
// set is replaced; factors omitted here lose their previous score.
type ScoreJobRequest struct {
	LevelsByFactor map[string]string `json:"levels_by_factor" binding:"required"`
}

type JobRoleResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Department  string  `json:"department"`
	TotalPoints float64 `json:"total_points"`
	GradeID     *string `json:"grade_id"`
	GradeName   *string `json:"grade_name,omitempty"`
}

type ScoreJobResponse struct {
	JobRoleID   string  `json:"job_role_id"`
	TotalPoints float64 `json:"total_points"`
	GradeID     *string `json:"grade_id"`
	GradeName   *string `json:"grade_name"`
}
