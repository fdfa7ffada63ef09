package dto

type AdviceRequest struct {
	Question string `json:"question" validate:"required"`
}

type AdviceResponse struct {
	Answer string `json:"answer"`
}
