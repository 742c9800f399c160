package models

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// Registration is the sign-up payload sent to the listing service.
type Registration struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// RegistrationForm is the browser-facing shape including the confirmation field.
type RegistrationForm struct {
	Registration
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}
