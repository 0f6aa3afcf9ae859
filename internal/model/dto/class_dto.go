package dto

// CreateClassRequest 创建课程请求，recurring=true 时会按星期展开生成后续课程
type CreateClassRequest struct {
	Name               string  `json:"name" binding:"required,max=100"`
	Description        string  `json:"description,omitempty"`
	InstructorID       int64   `json:"instructor_id" binding:"required"`
	LocationID         int64   `json:"location_id" binding:"required"`
	Date               string  `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime          string  `json:"start_time" binding:"required"` // HH:MM
	EndTime            string  `json:"end_time" binding:"required"`   // HH:MM
	Duration           int     `json:"duration,omitempty" binding:"omitempty,min=1"`
	Capacity           int     `json:"capacity" binding:"required,min=1"`
	Difficulty         string  `json:"difficulty,omitempty" binding:"omitempty,oneof=beginner intermediate advanced all"`
	Price              float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	RequiresEquipment  *bool   `json:"requires_equipment,omitempty"`
	EquipmentAvailable int     `json:"equipment_available,omitempty" binding:"omitempty,min=0"`
	Recurring          bool    `json:"recurring,omitempty"`
	RecurringDays      []int   `json:"recurring_days,omitempty" binding:"omitempty,dive,min=0,max=6"` // 0=周一
	RecurringUntil     string  `json:"recurring_until,omitempty"`                                     // YYYY-MM-DD
}

// CreateClassResponse 创建课程响应
type CreateClassResponse struct {
	ClassID   int64 `json:"class_id"`
	Generated int   `json:"generated"` // 递归展开生成的课程数（不含基准课程）
}

// UpdateClassRequest 更新课程请求
type UpdateClassRequest struct {
	Name               *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Description        *string  `json:"description,omitempty"`
	InstructorID       *int64   `json:"instructor_id,omitempty"`
	LocationID         *int64   `json:"location_id,omitempty"`
	Date               *string  `json:"date,omitempty"`       // YYYY-MM-DD
	StartTime          *string  `json:"start_time,omitempty"` // HH:MM
	EndTime            *string  `json:"end_time,omitempty"`   // HH:MM
	Duration           *int     `json:"duration,omitempty" binding:"omitempty,min=1"`
	Capacity           *int     `json:"capacity,omitempty" binding:"omitempty,min=1"`
	Difficulty         *string  `json:"difficulty,omitempty" binding:"omitempty,oneof=beginner intermediate advanced all"`
	Price              *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	RequiresEquipment  *bool    `json:"requires_equipment,omitempty"`
	EquipmentAvailable *int     `json:"equipment_available,omitempty" binding:"omitempty,min=0"`
}

// ClassListItem 课程列表项
type ClassListItem struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	InstructorID        int64   `json:"instructor_id"`
	InstructorName      string  `json:"instructor_name,omitempty"`
	LocationID          int64   `json:"location_id"`
	LocationName        string  `json:"location_name,omitempty"`
	Date                string  `json:"date"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
	Capacity            int     `json:"capacity"`
	CurrentParticipants int     `json:"current_participants"`
	AvailableSpots      int     `json:"available_spots"`
	Difficulty          string  `json:"difficulty"`
	Status              string  `json:"status"`
	Price               float64 `json:"price"`
}

// ClassDetail 课程详情
type ClassDetail struct {
	ClassListItem
	Description        string            `json:"description"`
	Duration           int               `json:"duration"`
	RequiresEquipment  bool              `json:"requires_equipment"`
	EquipmentAvailable int               `json:"equipment_available"`
	Recurring          bool              `json:"recurring"`
	RecurringDays      []int             `json:"recurring_days,omitempty"`
	RecurringUntil     string            `json:"recurring_until,omitempty"`
	CanCancel          bool              `json:"can_cancel"`
	Bookings           []BookingListItem `json:"bookings,omitempty"`
}
