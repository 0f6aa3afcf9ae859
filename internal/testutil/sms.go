package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/qs3c/gym_go_server/internal/pkg/sms"
)

// FakeSMSSender 测试用短信发送器，记录全部发送并可按手机号注入失败
type FakeSMSSender struct {
	mu       sync.Mutex
	sent     []FakeSMS
	failFor  map[string]error
	sequence int
}

type FakeSMS struct {
	Phone   string
	Message string
	SID     string
}

func NewFakeSMSSender() *FakeSMSSender {
	return &FakeSMSSender{failFor: make(map[string]error)}
}

// FailFor 让发往某手机号的短信返回指定错误
func (f *FakeSMSSender) FailFor(phone string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failFor[phone] = err
}

func (f *FakeSMSSender) Send(ctx context.Context, phone, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failFor[phone]; ok {
		return "", err
	}

	f.sequence++
	sid := fmt.Sprintf("SM%010d", f.sequence)
	f.sent = append(f.sent, FakeSMS{Phone: phone, Message: message, SID: sid})
	return sid, nil
}

// Sent 返回已成功发送的短信
func (f *FakeSMSSender) Sent() []FakeSMS {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FakeSMS, len(f.sent))
	copy(out, f.sent)
	return out
}

var _ sms.Sender = (*FakeSMSSender)(nil)
