package dto

// TokenResponse represents the response body of the /token endpoint.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}
