package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/sms"
	"github.com/qs3c/gym_go_server/internal/repository"
)

var ErrUnknownSMSStatus = errors.New("未知的短信状态")

// 运营商回调允许的状态集合
var deliveryStatuses = map[string]bool{
	model.SMSQueued:      true,
	model.SMSSent:        true,
	model.SMSDelivered:   true,
	model.SMSFailed:      true,
	model.SMSUndelivered: true,
}

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	clientRepo       *repository.ClientRepository
	sender           sms.Sender
}

func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	clientRepo *repository.ClientRepository,
	sender sms.Sender,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		clientRepo:       clientRepo,
		sender:           sender,
	}
}

// Send 向会员发送短信并落审计记录。发送成功记 sent 并保存运营商 sid，
// 发送失败记 error（无 sid），两种情况都会留痕。
func (s *NotificationService) Send(ctx context.Context, client *model.Client, message string) (*model.SMSNotification, error) {
	n := &model.SMSNotification{
		ClientID: client.ID,
		Message:  message,
	}

	sid, err := s.sender.Send(ctx, client.Phone, message)
	if err != nil {
		n.Status = model.SMSError
		if createErr := s.notificationRepo.Create(n); createErr != nil {
			log.Printf("Failed to record SMS error for client %d: %v", client.ID, createErr)
		}
		return n, err
	}

	n.SID = &sid
	n.Status = model.SMSSent
	if err := s.notificationRepo.Create(n); err != nil {
		return nil, err
	}
	return n, nil
}

// SendToClient 按会员 ID 发送短信
func (s *NotificationService) SendToClient(ctx context.Context, clientID int64, message string) (*dto.NotificationItem, error) {
	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	n, err := s.Send(ctx, client, message)
	if err != nil {
		return nil, err
	}
	return buildNotificationItem(n), nil
}

// SendBulk 群发短信。逐人发送互相隔离：个别会员失败不影响其余会员，
// 结果按成功/失败计数返回。
func (s *NotificationService) SendBulk(ctx context.Context, req *dto.BulkSMSRequest) (*dto.BulkSMSResponse, error) {
	clients, err := s.clientRepo.ListByIDs(req.ClientIDs)
	if err != nil {
		return nil, err
	}

	resp := &dto.BulkSMSResponse{}
	resp.Failed = len(req.ClientIDs) - len(clients) // 不存在的 ID 计入失败
	for _, c := range clients {
		if _, err := s.Send(ctx, c, req.Message); err != nil {
			log.Printf("Bulk SMS to client %d failed: %v", c.ID, err)
			resp.Failed++
			continue
		}
		resp.Sent++
	}
	return resp, nil
}

// HandleDeliveryCallback 处理运营商投递状态回调，按 sid 更新记录。
// 未知 sid 不报错（可能属于其他系统的消息），未知状态值拒绝。
func (s *NotificationService) HandleDeliveryCallback(sid, status string) error {
	if !deliveryStatuses[status] {
		return ErrUnknownSMSStatus
	}
	rows, err := s.notificationRepo.UpdateStatusBySID(sid, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		log.Printf("Delivery callback for unknown sid %s ignored", sid)
	}
	return nil
}

// List 最近的短信记录（倒序分页）
func (s *NotificationService) List(page, pageSize int) ([]*dto.NotificationItem, int64, error) {
	notifications, total, err := s.notificationRepo.ListRecent(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	items := make([]*dto.NotificationItem, len(notifications))
	for i, n := range notifications {
		items[i] = buildNotificationItem(n)
	}
	return items, total, nil
}

func buildNotificationItem(n *model.SMSNotification) *dto.NotificationItem {
	item := &dto.NotificationItem{
		ID:        n.ID,
		ClientID:  n.ClientID,
		Message:   n.Message,
		Status:    n.Status,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.SID != nil {
		item.SID = *n.SID
	}
	if n.Client != nil {
		item.ClientName = n.Client.FullName()
	}
	return item
}
