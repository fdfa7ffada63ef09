package dto

// SetBudgetRequest is the body of POST /set_budget. Amount is a pointer so
// a missing field can be told apart from zero.
type SetBudgetRequest struct {
	Category string   `json:"category" validate:"required"`
	Amount   *float64 `json:"amount" validate:"required,gte=0"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type InsightResponse struct {
	Budget          float64 `json:"budget"`
	Spent           float64 `json:"spent"`
	Remaining       float64 `json:"remaining"`
	PercentageSpent float64 `json:"percentage_spent"`
}

type HealthResponse struct {
	Status      string   `json:"status"`
	ModelLabels []string `json:"model_labels"`
}
