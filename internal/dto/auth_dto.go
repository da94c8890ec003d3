package dto

// AdminLoginRequest carries admin panel credentials.
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UnifiedLoginRequest carries credentials for the shared login endpoint.
type UnifiedLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the payload returned after a successful admin login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginUser describes the authenticated identity in a unified login response.
type LoginUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role,omitempty"`
	TotalScore *int   `json:"total_score,omitempty"`
}

// UnifiedLoginResponse is returned by the shared login endpoint for both
// admin and student identities.
type UnifiedLoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	UserType    string    `json:"user_type"`
	User        LoginUser `json:"user"`
}
