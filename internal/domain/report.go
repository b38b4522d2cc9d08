package domain

import "time"

const (
	LimitMaxTitleLen   = 100
	LimitMaxContentLen = 600
)

type Report struct {
	ID           int64
	ReportDate   time.Time `db:"report_date"`
	Title        string
	Content      string
	EmployeeCode string    `db:"employee_code"`
	EmployeeName string    `db:"employee_name"`
	DeleteFlg    bool      `db:"delete_flg"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// DateOf drops the time of day, keeping the calendar date as written.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
