package dto

type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `form:"current_password"`
	NewPassword     string `form:"new_password"`
}
