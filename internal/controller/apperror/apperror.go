// Package apperror maps session and invoice errors onto HTTP responses.
package apperror

import (
	"context"
	"errors"
	"net/http"

	"PlisioPay/internal/domain/invoice"
	"PlisioPay/internal/domain/payment"
	"PlisioPay/internal/session"

	"github.com/gin-gonic/gin"
)

// ErrActionNotOffered is returned when the current step has no such action.
var ErrActionNotOffered = errors.New("action is not offered by the current step")

var ErrInvalidPayload = errors.New("invalid payload")

func Status(err error) int {
	var apiErr *invoice.APIError
	switch {
	case errors.Is(err, ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrActionNotOffered), errors.Is(err, context.Canceled):
		return http.StatusConflict
	case errors.Is(err, payment.ErrNoInvoiceCreator):
		return http.StatusNotImplemented
	case errors.Is(err, payment.ErrMachineClosed):
		return http.StatusGone
	case errors.Is(err, invoice.ErrNotFound), errors.As(err, &apiErr),
		errors.Is(err, invoice.ErrUnexpectedResponse), errors.Is(err, invoice.ErrServiceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as {"message": ...} and aborts the request.
func Respond(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(Status(err), gin.H{"message": err.Error()})
}
