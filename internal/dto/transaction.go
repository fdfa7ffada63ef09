package dto

type TransactionResponse struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

type CategoryTotalResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type AlertResponse struct {
	Category string  `json:"category"`
	Spent    float64 `json:"spent"`
	Budget   float64 `json:"budget"`
	// Percentage is null when the budget is zero
	Percentage *float64 `json:"percentage"`
}

type UploadResponse struct {
	UploadID string                  `json:"upload_id"`
	FileName string                  `json:"file_name"`
	Expenses []TransactionResponse   `json:"expenses"`
	Summary  []CategoryTotalResponse `json:"summary"`
	Alerts   []AlertResponse         `json:"alerts"`
}
