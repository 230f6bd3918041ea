package handler

// --- Request / Response types ---
//
// Validation rules live on the request structs and run before the service is
// invoked; the transport layer never hands unvalidated input downstream.

type registerRequest struct {
	Name  string  `json:"name"       validate:"required"`
	Email string  `json:"email"      validate:"required,email"`
	Score float64 `json:"puntuacion"`
	Role  string  `json:"rol"`
}

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type userResponse struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Score float64 `json:"puntuacion"`
	Role  string  `json:"rol"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Message      string `json:"message"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Status       int    `json:"status"`
	Message      string `json:"message"`
}

type scoreResponse struct {
	Name  string  `json:"name"`
	Score float64 `json:"puntuacion"`
}
