package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type SweepResponse struct {
	PlanImagesDeleted    int `json:"plan_images_deleted"`
	ProfileImagesDeleted int `json:"profile_images_deleted"`
	Failed               int `json:"failed"`
}
