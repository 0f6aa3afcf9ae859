package sms

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// OverdueMessage 逾期催缴短信
func OverdueMessage(firstName string, due time.Time) string {
	return fmt.Sprintf("%s您好，您的健身会籍已于 %s 到期，请尽快续费，以免账号被停用。",
		firstName, due.Format(dateLayout))
}

// UpcomingDueMessage 到期前提醒短信
func UpcomingDueMessage(firstName string, due time.Time) string {
	return fmt.Sprintf("%s您好，您的健身会籍将于 %s 到期，请及时续费以继续使用场馆服务。",
		firstName, due.Format(dateLayout))
}

// DeactivatedMessage 停用通知短信
func DeactivatedMessage(firstName string) string {
	return fmt.Sprintf("%s您好，因长期未续费，您的健身会籍已被停用。如需恢复请联系前台。", firstName)
}

// ClassCancelledMessage 课程取消通知短信
func ClassCancelledMessage(firstName, className string, date time.Time, startTime string) string {
	return fmt.Sprintf("%s您好，您预约的课程「%s」（%s %s）已取消，由此带来不便敬请谅解。",
		firstName, className, date.Format(dateLayout), startTime)
}
