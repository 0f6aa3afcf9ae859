package repository

import "errors"

var (
	// ErrNoCapacity 课程名额已满（守卫更新未命中任何行）
	ErrNoCapacity = errors.New("no capacity left")
	// ErrDuplicate 同一会员对同一课程已存在预约
	ErrDuplicate = errors.New("duplicate booking")
	// ErrNotBookable 课程已取消或已结束，不再接受预约
	ErrNotBookable = errors.New("class not bookable")
	// ErrTerminalState 预约处于终态，拒绝状态转换
	ErrTerminalState = errors.New("booking in terminal state")
)
