package policy

import "errors"

var (
	ErrPolicyNotConfigured = errors.New("no attendance policy has been configured")
	ErrHolidayNotFound     = errors.New("holiday not found")
	ErrHolidayExists       = errors.New("a holiday already exists on this date")
)
