package model

import (
	"fmt"
	"time"
)

// Notification event key prefixes. A full key is
// "<event>_<po_date>_<day|night>", and the hourly late alert additionally
// carries the hour: "late_alert_<day|night>_<po_date>_<hour>".
const (
	NotifyCompletedIn   = "completed_in"
	NotifyCompletedOut  = "completed_out"
	NotifyCompletedDone = "completed_done"
	NotifyLateAlert     = "late_alert"
)

// NotificationLog is the idempotency ledger, table notify_logs. Existence of a
// key is the sole source of truth for "already notified"; the unique index on
// notify_key makes the check-and-insert atomic across concurrent invocations.
type NotificationLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"              json:"-"`
	NotifyKey string    `gorm:"column:notify_key;type:varchar(100);not null;uniqueIndex" json:"notify_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"created_at"`
}

// TableName maps the model to the notify_logs table.
func (NotificationLog) TableName() string { return "notify_logs" }

// MilestoneKey builds a ledger key for a shift-wide completion event.
func MilestoneKey(event, poDate string, shift Shift) string {
	return event + "_" + poDate + "_" + string(shift)
}

// LateAlertKey builds the hourly late-roster ledger key, so a standing late
// condition re-alerts at most once per hour instead of once per day.
func LateAlertKey(shift Shift, poDate string, hour int) string {
	return fmt.Sprintf("%s_%s_%s_%02d", NotifyLateAlert, shift, poDate, hour)
}
