// Package common holds the response and binding helpers shared by the HTTP
// handlers.
package common

import (
	"errors"

	"github.com/fintechlab/accounts/pkg/domain/account"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
}

// ProblemJSON writes a response following RFC 9457 Problem Details.
func ProblemJSON(c *fiber.Ctx, status int, title, detail string) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// DomainErrorJSON writes a problem response for a domain error, using
// ErrorToStatusCode for the status.
func DomainErrorJSON(c *fiber.Ctx, title string, err error) error {
	return ProblemJSON(c, ErrorToStatusCode(err), title, err.Error())
}

// ErrorToStatusCode maps domain errors to HTTP status codes. Limit-exceeded
// and insufficient-funds map to 500: the published contract treats them as
// server faults, and clients depend on that.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, account.ErrEmptyOwner),
		errors.Is(err, account.ErrNegativeBalance),
		errors.Is(err, account.ErrNegativeLimit),
		errors.Is(err, account.ErrEmptyTarget),
		errors.Is(err, account.ErrAmountMustBePositive),
		errors.Is(err, account.ErrSameAccount):
		return fiber.StatusBadRequest
	case errors.Is(err, account.ErrWithdrawLimitExceeded),
		errors.Is(err, account.ErrInsufficientFunds):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. Returns the populated struct, or writes an error
// response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		ProblemJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error()) //nolint:errcheck
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		ProblemJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error()) //nolint:errcheck
		return nil, err
	}
	return &input, nil
}
