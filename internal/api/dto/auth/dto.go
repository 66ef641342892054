package auth

type RegisterRequest struct {
	Name     string `json:"name"`     // Имя пользователя
	Login    string `json:"login"`    // Логин (уникальный)
	Password string `json:"password"` // Пароль
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
