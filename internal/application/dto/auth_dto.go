package dto

// TokenResponse token emitido por el CLI de desarrollo.
type TokenResponse struct {
	Token     string `json:"token"`
	WorkerID  string `json:"workerId"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expiresIn"` // minutos
}
