package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	categoryHandler    categoryHandler
	skillHandler       skillHandler
	projectHandler     projectHandler
	certificateHandler certificateHandler
	languageHandler    languageHandler
	mediaHandler       mediaHandler
	systemHandler      systemHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"name"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// UploadImageResponse is returned after a skill image upload
type UploadImageResponse struct {
	Path string `json:"path" example:"/uploads/skills/2f0c7a8e-6f2b-4c55-9a57-2f1d7f0f8c11.png"`
}
