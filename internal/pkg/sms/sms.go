package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/qs3c/gym_go_server/config"
)

// ErrTransport 短信发送失败（网络错误或网关拒绝）。
// 调用方据此落一条 error 状态的审计记录，业务操作本身不失败。
var ErrTransport = errors.New("sms transport error")

// Sender 短信发送能力，返回运营商消息 sid，投递状态由异步回调更新
type Sender interface {
	Send(ctx context.Context, phone, message string) (string, error)
}

// TwilioSender Twilio Messages REST 接口实现
type TwilioSender struct {
	cfg        *config.TwilioConfig
	httpClient *http.Client
	endpoint   string
}

func NewTwilioSender(cfg *config.TwilioConfig) *TwilioSender {
	return &TwilioSender{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoint:   fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", cfg.AccountSID),
	}
}

func (s *TwilioSender) Send(ctx context.Context, phone, message string) (string, error) {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", s.cfg.FromNumber)
	form.Set("Body", message)
	if s.cfg.CallbackURL != "" {
		form.Set("StatusCallback", s.cfg.CallbackURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: gateway returned %d", ErrTransport, resp.StatusCode)
	}

	var body struct {
		SID string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}
	if body.SID == "" {
		return "", fmt.Errorf("%w: empty sid in response", ErrTransport)
	}

	return body.SID, nil
}
