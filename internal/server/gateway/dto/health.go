package dto

type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
	Redis  bool   `json:"redis" example:"true"`
}
