package dto

// RegisterRequest 员工注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=32"`
	FullName string `json:"full_name,omitempty" binding:"omitempty,max=200"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=admin recep"`
}

// RegisterResponse 员工注册响应
type RegisterResponse struct {
	StaffID int64 `json:"staff_id"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string     `json:"token"`
	Staff *StaffInfo `json:"staff"`
}

// StaffInfo 员工信息（返回给前端）
type StaffInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
