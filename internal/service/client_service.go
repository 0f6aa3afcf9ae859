package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/clock"
	"github.com/qs3c/gym_go_server/internal/repository"
)

var (
	ErrClientNotFound   = errors.New("会员不存在")
	ErrClientNotDeleted = errors.New("会员不在回收站中")
)

// 续费后会籍顺延的天数
const renewalPeriodDays = 30

type ClientService struct {
	clientRepo *repository.ClientRepository
	clk        clock.Clock
}

func NewClientService(clientRepo *repository.ClientRepository, clk clock.Clock) *ClientService {
	return &ClientService{clientRepo: clientRepo, clk: clk}
}

// Create 创建会员，未指定下次付费日时默认为今天起 30 天后
func (s *ClientService) Create(req *dto.CreateClientRequest) (*dto.ClientDetail, error) {
	today := clock.Today(s.clk)

	next := today.AddDate(0, 0, renewalPeriodDays)
	if req.NextPaymentDate != "" {
		parsed, err := time.Parse(dateLayout, req.NextPaymentDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		next = parsed
	}

	client := &model.Client{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Email:           req.Email,
		Active:          true,
		PaymentStatus:   model.PaymentPending,
		NextPaymentDate: &next,
	}
	if err := s.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return s.buildClientDetail(client), nil
}

// GetByID 获取会员详情
func (s *ClientService) GetByID(id int64) (*dto.ClientDetail, error) {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return s.buildClientDetail(client), nil
}

// List 获取会员列表（不含回收站），支持姓名/电话搜索和付费状态过滤
func (s *ClientService) List(search, paymentStatus string, page, pageSize int) ([]*dto.ClientDetail, int64, error) {
	clients, total, err := s.clientRepo.List(search, paymentStatus, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	items := make([]*dto.ClientDetail, len(clients))
	for i, c := range clients {
		items[i] = s.buildClientDetail(c)
	}
	return items, total, nil
}

// ListDeleted 获取回收站中的会员
func (s *ClientService) ListDeleted() ([]*dto.ClientDetail, error) {
	clients, err := s.clientRepo.ListDeleted()
	if err != nil {
		return nil, err
	}
	items := make([]*dto.ClientDetail, len(clients))
	for i, c := range clients {
		items[i] = s.buildClientDetail(c)
	}
	return items, nil
}

// Update 更新会员资料
func (s *ClientService) Update(id int64, req *dto.UpdateClientRequest) (*dto.ClientDetail, error) {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		client.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		client.LastName = *req.LastName
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Active != nil {
		client.Active = *req.Active
	}
	if req.NextPaymentDate != nil {
		next, err := time.Parse(dateLayout, *req.NextPaymentDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		client.NextPaymentDate = &next
	}

	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return s.buildClientDetail(client), nil
}

// SoftDelete 移入回收站。软删会员不出现在常规列表，也不再参与会费任务
func (s *ClientService) SoftDelete(id int64) error {
	if _, err := s.clientRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return s.clientRepo.SoftDelete(id, s.clk.Now())
}

// Restore 从回收站恢复
func (s *ClientService) Restore(id int64) error {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	if !client.IsDeleted {
		return ErrClientNotDeleted
	}
	return s.clientRepo.Restore(id)
}

// HardDelete 彻底删除会员及其预约、短信记录（同一事务）
func (s *ClientService) HardDelete(id int64) error {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	if !client.IsDeleted {
		return ErrClientNotDeleted
	}
	return s.clientRepo.HardDelete(id)
}

// Renew 续费：付费状态置为 paid，最近付费日为今天，下次付费日顺延 30 天，
// 并重新激活会员。对 overdue 的会员续费即恢复正常。
func (s *ClientService) Renew(id int64) (*dto.ClientDetail, error) {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.IsDeleted {
		return nil, ErrClientNotFound
	}

	today := clock.Today(s.clk)
	next := today.AddDate(0, 0, renewalPeriodDays)
	if err := s.clientRepo.Renew(id, today, next); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *ClientService) buildClientDetail(c *model.Client) *dto.ClientDetail {
	detail := &dto.ClientDetail{
		ID:            c.ID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Phone:         c.Phone,
		Active:        c.Active,
		IsDeleted:     c.IsDeleted,
		PaymentStatus: c.PaymentStatus,
		DaysUntilDue:  c.DaysUntilDue(clock.Today(s.clk)),
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
	if c.Email != nil {
		detail.Email = *c.Email
	}
	if c.DeletedAt != nil {
		detail.DeletedAt = c.DeletedAt.Format(time.RFC3339)
	}
	if c.LastPaymentDate != nil {
		detail.LastPaymentDate = c.LastPaymentDate.Format(dateLayout)
	}
	if c.NextPaymentDate != nil {
		detail.NextPaymentDate = c.NextPaymentDate.Format(dateLayout)
	}
	return detail
}
