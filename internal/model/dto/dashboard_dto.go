package dto

// DashboardStats 首页看板统计
type DashboardStats struct {
	TotalClients      int64   `json:"total_clients"`
	PaidClients       int64   `json:"paid_clients"`
	OverdueClients    int64   `json:"overdue_clients"`
	DeletedClients    int64   `json:"deleted_clients"`
	ClassesToday      int64   `json:"classes_today"`
	BookingsToday     int64   `json:"bookings_today"`
	OccupancyToday    float64 `json:"occupancy_today"` // 今日课程占用率（百分比）
	ActiveInstructors int64   `json:"active_instructors"`
	ActiveLocations   int64   `json:"active_locations"`

	UpcomingPayments []UpcomingPayment `json:"upcoming_payments"`
}

// UpcomingPayment 即将到期的会员
type UpcomingPayment struct {
	ClientID        int64  `json:"client_id"`
	ClientName      string `json:"client_name"`
	NextPaymentDate string `json:"next_payment_date"`
	DaysUntilDue    int    `json:"days_until_due"`
}
