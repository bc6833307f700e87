package dto

// ── bootstrap ──

// BootstrapRequest GET /api/bootstrap query
type BootstrapRequest struct {
	Email string `form:"email" binding:"required"`
}

// BootstrapResponse identity and static options for the client shell
type BootstrapResponse struct {
	Email           string            `json:"email"`
	Name            string            `json:"name"`
	Roles           []string          `json:"roles"`
	IsPM            bool              `json:"isPM"`
	IsOps           bool              `json:"isOps"`
	PriorityOptions []string          `json:"priorityOptions"`
	PhaseColors     map[string]string `json:"phaseColors"`
	LogoURL         string            `json:"logoUrl"`
}
