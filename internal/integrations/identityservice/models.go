package identityservice

// Identity модель аутентифицированного пользователя из identity-сервиса
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

// ErrorResponse модель ошибки от identity-сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
