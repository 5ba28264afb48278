package domain

// User is the authenticated principal attached to a request.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Disabled bool   `json:"disabled"`
}

// Token is the response body of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
