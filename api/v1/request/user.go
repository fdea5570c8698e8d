package request

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=100"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,userpass"`
	Phone    *string `json:"phone" binding:"omitempty,phone_ru"`
}

type ProfileUpdateRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty,phone_ru"`
}

type PasswordChangeRequest struct {
	NewPassword       string `json:"new_password" binding:"required,userpass"`
	NewPasswordRepeat string `json:"new_password_repeat" binding:"required"`
}

type AdminPasswordChangeRequest struct {
	NewPassword string `json:"new_password" binding:"required,userpass"`
}
