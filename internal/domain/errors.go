package domain

import (
	"errors"
	"fmt"
)

// ErrNoSubscriptions — Receive вызван до Subscribe (ошибка порядка вызовов).
var ErrNoSubscriptions = errors.New("no subscriptions registered for consumer")

// NoSubscriptions — ErrNoSubscriptions с указанием метода, который нужно вызвать первым.
func NoSubscriptions(method string) error {
	return fmt.Errorf("%w: please call %q first", ErrNoSubscriptions, method+"()")
}

// BrokerError — ошибка, поднятая клиентом брокера (а не возвращённая статусом сообщения).
type BrokerError struct {
	Code   Status
	Reason string
	Err    error
}

// NewBrokerError — конструктор BrokerError.
func NewBrokerError(code Status, reason string, cause error) *BrokerError {
	return &BrokerError{Code: code, Reason: reason, Err: cause}
}

func (e *BrokerError) Error() string {
	return fmt.Sprintf("kafka error: %d - %s (reason: %s)", int(e.Code), e.Code, e.Reason)
}

func (e *BrokerError) Unwrap() error { return e.Err }

// IsTimeout — ошибка означает истечение окна ожидания Receive.
func (e *BrokerError) IsTimeout() bool { return e.Code == StatusTimedOut }

// AsBrokerError — достаёт *BrokerError из цепочки ошибок.
func AsBrokerError(err error) (*BrokerError, bool) {
	var be *BrokerError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
