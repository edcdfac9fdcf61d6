package dto

// CompleteRegistrationRequest - завершение регистрации по одноразовому токену
type CompleteRegistrationRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`

	FullName   string `json:"full_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	TargetRole string `json:"target_role,omitempty"`
	ResumeURL  string `json:"resume_url,omitempty" validate:"omitempty,url"`
}

// CompleteRegistrationResponse - созданный клиент и токены сессии
type CompleteRegistrationResponse struct {
	ClientID     string  `json:"client_id"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}
