package service

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime          = errors.New("invalid time, expected HH:MM or HH:MM:SS")
	ErrInvalidWorkingHours  = errors.New("invalid working hours")
	ErrEnterpriseNotFound   = errors.New("enterprise not found")
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrClientExists         = errors.New("client already exists")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	// ErrAppointmentNotActive - запись отменена или завершена
	ErrAppointmentNotActive = errors.New("appointment is not active")
	// ErrEnterpriseMismatch - клиент, услуга и специалист из разных предприятий
	ErrEnterpriseMismatch = errors.New("entities belong to different enterprises")
	ErrSlotUnavailable    = errors.New("time slot is not available")
	// ErrSlotTaken - слот занят параллельной записью
	ErrSlotTaken = errors.New("time slot already taken")
	// ErrSlotBusy - день специалиста сейчас бронируется другим запросом, можно повторить
	ErrSlotBusy      = errors.New("slot is being booked, retry later")
	ErrPhoneMismatch = errors.New("phone does not match client")
	ErrInvalidCode   = errors.New("invalid verification code")
	ErrCodeExpired   = errors.New("verification code expired or not requested")
)
