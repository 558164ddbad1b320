package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid customer input")
	// ErrEmailTaken signals another customer already registered the address.
	ErrEmailTaken = errors.New("email already in use")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) || errors.Is(err, domain.ErrInvalidEmail) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrDuplicateEmail) {
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)
	}
	return err
}
