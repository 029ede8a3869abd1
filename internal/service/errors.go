package service

import (
	"errors"
	"fmt"

	"postavki/internal/domain"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotEnoughStock     = errors.New("not enough stock")
	ErrInvalidState       = errors.New("invalid state")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedContent   = domain.ErrMalformedContent
)

// StateError статус поставки не допускает перехода
type StateError struct {
	Current  domain.SupplyStatus
	Required domain.SupplyStatus
}

func (e *StateError) Error() string {
	return fmt.Sprintf("invalid state: supply is %q, required %q", e.Current, e.Required)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

// StockError в партии меньше, чем запрошено
type StockError struct {
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("not enough stock (available: %d, requested: %d)", e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrNotEnoughStock }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}
