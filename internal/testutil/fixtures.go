package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

// TestClient 创建测试会员
func TestClient(t *testing.T, db *gorm.DB, opts ...func(*model.Client)) *model.Client {
	t.Helper()

	next := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 30)
	client := &model.Client{
		FirstName:       "Test",
		LastName:        fmt.Sprintf("Client%d", time.Now().UnixNano()%100000),
		Phone:           fmt.Sprintf("+861380000%04d", time.Now().UnixNano()%10000),
		Active:          true,
		PaymentStatus:   model.PaymentPending,
		NextPaymentDate: &next,
	}

	for _, opt := range opts {
		opt(client)
	}

	// active 列带 default:true，Create 会跳过零值 false 并以默认值回填结构体，
	// 停用状态需在插入后显式回写
	inactive := !client.Active
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}
	if inactive {
		if err := db.Model(client).Update("active", false).Error; err != nil {
			t.Fatalf("Failed to persist inactive test client: %v", err)
		}
	}
	return client
}

// WithPaymentStatus 设置付费状态
func WithPaymentStatus(status string) func(*model.Client) {
	return func(c *model.Client) {
		c.PaymentStatus = status
	}
}

// WithNextPaymentDate 设置下次付费日
func WithNextPaymentDate(next time.Time) func(*model.Client) {
	return func(c *model.Client) {
		c.NextPaymentDate = &next
	}
}

// WithInactive 设置为停用
func WithInactive() func(*model.Client) {
	return func(c *model.Client) {
		c.Active = false
	}
}

// WithDeleted 设置为回收站状态
func WithDeleted(deletedAt time.Time) func(*model.Client) {
	return func(c *model.Client) {
		c.IsDeleted = true
		c.DeletedAt = &deletedAt
	}
}

// TestInstructor 创建测试教练
func TestInstructor(t *testing.T, db *gorm.DB, opts ...func(*model.Instructor)) *model.Instructor {
	t.Helper()

	instructor := &model.Instructor{
		FirstName: "Coach",
		LastName:  fmt.Sprintf("I%d", time.Now().UnixNano()%100000),
		Phone:     "+8613900000000",
		Active:    true,
	}

	for _, opt := range opts {
		opt(instructor)
	}

	if err := db.Create(instructor).Error; err != nil {
		t.Fatalf("Failed to create test instructor: %v", err)
	}
	return instructor
}

// TestLocation 创建测试场地
func TestLocation(t *testing.T, db *gorm.DB, opts ...func(*model.Location)) *model.Location {
	t.Helper()

	location := &model.Location{
		Name:        fmt.Sprintf("Studio %d", time.Now().UnixNano()%100000),
		Capacity:    30,
		IsActive:    true,
		OpeningTime: "06:00",
		ClosingTime: "22:00",
	}

	for _, opt := range opts {
		opt(location)
	}

	if err := db.Create(location).Error; err != nil {
		t.Fatalf("Failed to create test location: %v", err)
	}
	return location
}

// TestClass 创建测试课程
func TestClass(t *testing.T, db *gorm.DB, instructorID, locationID int64, opts ...func(*model.ClassInstance)) *model.ClassInstance {
	t.Helper()

	class := &model.ClassInstance{
		Name:         "Yoga",
		InstructorID: instructorID,
		LocationID:   locationID,
		Date:         time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1),
		StartTime:    "10:00",
		EndTime:      "11:00",
		Duration:     60,
		Capacity:     10,
		Difficulty:   model.DifficultyAll,
		Status:       model.ClassScheduled,
		Price:        150,
	}

	for _, opt := range opts {
		opt(class)
	}

	if err := db.Create(class).Error; err != nil {
		t.Fatalf("Failed to create test class: %v", err)
	}
	return class
}

// WithDate 设置上课日期
func WithDate(date time.Time) func(*model.ClassInstance) {
	return func(c *model.ClassInstance) {
		c.Date = date
	}
}

// WithTimes 设置上下课时间
func WithTimes(start, end string) func(*model.ClassInstance) {
	return func(c *model.ClassInstance) {
		c.StartTime = start
		c.EndTime = end
	}
}

// WithCapacity 设置容量和当前人数
func WithCapacity(capacity, current int) func(*model.ClassInstance) {
	return func(c *model.ClassInstance) {
		c.Capacity = capacity
		c.CurrentParticipants = current
	}
}

// WithStatus 设置课程状态
func WithStatus(status string) func(*model.ClassInstance) {
	return func(c *model.ClassInstance) {
		c.Status = status
	}
}

// TestBooking 创建测试预约
func TestBooking(t *testing.T, db *gorm.DB, clientID, classID int64, opts ...func(*model.Booking)) *model.Booking {
	t.Helper()

	booking := &model.Booking{
		ClientID: clientID,
		ClassID:  classID,
		Status:   model.BookingConfirmed,
	}

	for _, opt := range opts {
		opt(booking)
	}

	if err := db.Create(booking).Error; err != nil {
		t.Fatalf("Failed to create test booking: %v", err)
	}
	return booking
}

// WithBookingStatus 设置预约状态
func WithBookingStatus(status string) func(*model.Booking) {
	return func(b *model.Booking) {
		b.Status = status
	}
}

// TestStaff 创建测试员工
func TestStaff(t *testing.T, db *gorm.DB, opts ...func(*model.Staff)) *model.Staff {
	t.Helper()

	staff := &model.Staff{
		Username:     fmt.Sprintf("staff_%d", time.Now().UnixNano()%100000),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Role:         "recep",
	}

	for _, opt := range opts {
		opt(staff)
	}

	if err := db.Create(staff).Error; err != nil {
		t.Fatalf("Failed to create test staff: %v", err)
	}
	return staff
}
