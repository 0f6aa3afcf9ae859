package dto

// CreateLocationRequest 创建场地请求
type CreateLocationRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Address     string  `json:"address,omitempty"`
	Phone       string  `json:"phone,omitempty" binding:"omitempty,max=15"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Capacity    int     `json:"capacity,omitempty" binding:"omitempty,min=1"`
	OpeningTime string  `json:"opening_time,omitempty"` // HH:MM
	ClosingTime string  `json:"closing_time,omitempty"` // HH:MM
}

// UpdateLocationRequest 更新场地请求
type UpdateLocationRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,max=15"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Capacity    *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
	IsActive    *bool   `json:"is_active,omitempty"`
	OpeningTime *string `json:"opening_time,omitempty"` // HH:MM
	ClosingTime *string `json:"closing_time,omitempty"` // HH:MM
}

// LocationDetail 场地详情
type LocationDetail struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Capacity    int    `json:"capacity"`
	IsActive    bool   `json:"is_active"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
	CreatedAt   string `json:"created_at"`
}
