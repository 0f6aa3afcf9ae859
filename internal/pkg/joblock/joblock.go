package joblock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Locker 基于 Redis SET NX 的任务互斥锁。
// 定时任务可能被多个实例同时触发，同名任务在 TTL 内只允许一个持有者运行；
// 任务本身幂等，锁只用来避免重复扫描和重复发短信。
type Locker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewLocker(client *redis.Client, prefix string, ttl time.Duration) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Acquire 尝试获取任务锁，返回是否取得
func (l *Locker) Acquire(ctx context.Context, jobName string) (bool, error) {
	return l.client.SetNX(ctx, l.key(jobName), time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
}

// Release 释放任务锁
func (l *Locker) Release(ctx context.Context, jobName string) error {
	return l.client.Del(ctx, l.key(jobName)).Err()
}

func (l *Locker) key(jobName string) string {
	return fmt.Sprintf("%s:%s", l.prefix, jobName)
}
