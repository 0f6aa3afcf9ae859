package dto

// SendSMSRequest 单发短信请求
type SendSMSRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

// BulkSMSRequest 群发短信请求
type BulkSMSRequest struct {
	ClientIDs []int64 `json:"client_ids" binding:"required,min=1"`
	Message   string  `json:"message" binding:"required,max=1000"`
}

// BulkSMSResponse 群发短信结果，逐人隔离统计
type BulkSMSResponse struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// NotificationItem 短信记录
type NotificationItem struct {
	ID         int64  `json:"id"`
	ClientID   int64  `json:"client_id"`
	ClientName string `json:"client_name,omitempty"`
	Message    string `json:"message"`
	SID        string `json:"sid,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}
