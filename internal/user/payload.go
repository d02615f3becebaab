package user

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	AvatarKey   string `json:"avatar_key"`
}

type PublicProfile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarKey   string `json:"avatar_key"`
	EcoPoints   int64  `json:"eco_points"`
}
