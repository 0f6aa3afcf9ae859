package dto

// CreateClientRequest 创建会员请求
type CreateClientRequest struct {
	FirstName       string  `json:"first_name" binding:"required,max=100"`
	LastName        string  `json:"last_name" binding:"required,max=100"`
	Phone           string  `json:"phone" binding:"required,max=15"`
	Email           *string `json:"email,omitempty" binding:"omitempty,email"`
	NextPaymentDate string  `json:"next_payment_date,omitempty"` // YYYY-MM-DD
}

// UpdateClientRequest 更新会员请求
type UpdateClientRequest struct {
	FirstName       *string `json:"first_name,omitempty" binding:"omitempty,max=100"`
	LastName        *string `json:"last_name,omitempty" binding:"omitempty,max=100"`
	Phone           *string `json:"phone,omitempty" binding:"omitempty,max=15"`
	Email           *string `json:"email,omitempty" binding:"omitempty,email"`
	Active          *bool   `json:"active,omitempty"`
	NextPaymentDate *string `json:"next_payment_date,omitempty"` // YYYY-MM-DD
}

// ClientDetail 会员详情
type ClientDetail struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	Active          bool   `json:"active"`
	IsDeleted       bool   `json:"is_deleted"`
	DeletedAt       string `json:"deleted_at,omitempty"`
	PaymentStatus   string `json:"payment_status"`
	LastPaymentDate string `json:"last_payment_date,omitempty"`
	NextPaymentDate string `json:"next_payment_date,omitempty"`
	DaysUntilDue    int    `json:"days_until_due"`
	CreatedAt       string `json:"created_at"`
}
