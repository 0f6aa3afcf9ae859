package dto

// CreateBookingRequest 创建预约请求
type CreateBookingRequest struct {
	ClientID      int64   `json:"client_id" binding:"required"`
	PaymentStatus bool    `json:"payment_status,omitempty"`
	AmountPaid    float64 `json:"amount_paid,omitempty" binding:"omitempty,min=0"`
	Notes         string  `json:"notes,omitempty"`
}

// BookingListItem 预约列表项
type BookingListItem struct {
	ID            int64   `json:"id"`
	ClientID      int64   `json:"client_id"`
	ClientName    string  `json:"client_name,omitempty"`
	ClassID       int64   `json:"class_id"`
	ClassName     string  `json:"class_name,omitempty"`
	ClassDate     string  `json:"class_date,omitempty"`
	Status        string  `json:"status"`
	PaymentStatus bool    `json:"payment_status"`
	AmountPaid    float64 `json:"amount_paid"`
	Attended      bool    `json:"attended"`
	CheckInTime   string  `json:"check_in_time,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
