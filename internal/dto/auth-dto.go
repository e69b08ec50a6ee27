package dto

// GoogleAuthRequest is the body of POST /google-firebase-auth/google_auth.
// The Firebase ID token itself travels in the Authorization header.
type GoogleAuthRequest struct {
	UserData *GoogleUserData `json:"userData,omitempty"`
}

type GoogleUserData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

type GoogleAuthResponse struct {
	Success bool           `json:"success"`
	User    GoogleAuthUser `json:"user"`
	Token   string         `json:"token"`
}

type GoogleAuthUser struct {
	ID        uint    `json:"id"`
	GoogleID  string  `json:"googleId"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Picture   *string `json:"picture,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	UserID int     `json:"user_id"`
	Email  string  `json:"email"`
	Iat    float64 `json:"iat"`
	Expiry float64 `json:"expiry"`
}
