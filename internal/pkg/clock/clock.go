package clock

import "time"

// Clock 统一的时间来源，业务组件通过注入获取当前时间，测试中使用固定时钟
type Clock interface {
	Now() time.Time
}

// Real 系统时钟
type Real struct{}

func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Fixed 固定时钟（测试用）
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}

// Today 取 now 所在日期的零点（UTC），日期字段统一按此存储和比较
func Today(c Clock) time.Time {
	return Midnight(c.Now())
}

// Midnight 截断到当日零点
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
