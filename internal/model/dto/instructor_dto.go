package dto

// CreateInstructorRequest 创建教练请求
type CreateInstructorRequest struct {
	FirstName      string  `json:"first_name" binding:"required,max=100"`
	LastName       string  `json:"last_name" binding:"required,max=100"`
	Phone          string  `json:"phone" binding:"required,max=15"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	Specialization string  `json:"specialization,omitempty" binding:"omitempty,max=200"`
	Bio            string  `json:"bio,omitempty"`
	HireDate       string  `json:"hire_date,omitempty"` // YYYY-MM-DD
}

// UpdateInstructorRequest 更新教练请求
type UpdateInstructorRequest struct {
	FirstName      *string `json:"first_name,omitempty" binding:"omitempty,max=100"`
	LastName       *string `json:"last_name,omitempty" binding:"omitempty,max=100"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,max=15"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	Specialization *string `json:"specialization,omitempty" binding:"omitempty,max=200"`
	Bio            *string `json:"bio,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

// InstructorDetail 教练详情
type InstructorDetail struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	Specialization string `json:"specialization"`
	Bio            string `json:"bio"`
	PhotoURL       string `json:"photo_url,omitempty"`
	Active         bool   `json:"active"`
	HireDate       string `json:"hire_date,omitempty"`
	CreatedAt      string `json:"created_at"`
}
