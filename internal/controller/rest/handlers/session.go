package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"PlisioPay/internal/controller/apperror"
	"PlisioPay/internal/domain/invoice"
	"PlisioPay/internal/domain/payment"
	"PlisioPay/internal/session"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	manager *session.Manager
	apiKey  string
	now     func() time.Time
}

// NewSessionHandler creates the handler. apiKey is used for invoices/new.
func NewSessionHandler(m *session.Manager, apiKey string) SessionHandler {
	return SessionHandler{manager: m, apiKey: apiKey, now: time.Now}
}

type invoiceRequest struct {
	InvoiceID invoice.ID      `json:"invoice_id" binding:"required"`
	ViewKey   invoice.ViewKey `json:"view_key" binding:"required"`
}

type openRequest struct {
	InvoiceID invoice.ID      `json:"invoice_id"`
	ViewKey   invoice.ViewKey `json:"view_key"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required"`
}

type currencyRequest struct {
	Currency invoice.CurrencyID `json:"currency" binding:"required"`
}

func (h *SessionHandler) respondStep(c *gin.Context, status int, s *session.Session) {
	c.JSON(status, NewStepView(s.ID, s.Machine.Step(), h.now()))
}

func (h *SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.manager.Get(c.Param("session_id"))
	if err != nil {
		apperror.Respond(c, err)
		return nil, false
	}
	return s, true
}

// Open creates a session and optionally starts loading an invoice.
func (h *SessionHandler) Open(c *gin.Context) {
	var req openRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apperror.Respond(c, fmt.Errorf("%w: %v", apperror.ErrInvalidPayload, err))
			return
		}
	}

	s := h.manager.Open()
	if !req.InvoiceID.IsBlank() {
		s.Machine.LoadInvoice(req.InvoiceID, req.ViewKey)
	}

	c.Header("Location", "/sessions/"+s.ID)
	h.respondStep(c, http.StatusCreated, s)
}

func (h *SessionHandler) Step(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.respondStep(c, http.StatusOK, s)
}

func (h *SessionHandler) LoadInvoice(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, fmt.Errorf("%w: %v", apperror.ErrInvalidPayload, err))
		return
	}

	s.Machine.LoadInvoice(req.InvoiceID, req.ViewKey)
	h.respondStep(c, http.StatusAccepted, s)
}

// NewInvoice creates an invoice with the configured shop key, or reuses the
// one remembered for the same order number, and loads it.
func (h *SessionHandler) NewInvoice(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req invoice.NewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, fmt.Errorf("%w: %v", apperror.ErrInvalidPayload, err))
		return
	}
	if strings.TrimSpace(h.apiKey) == "" {
		apperror.Respond(c, payment.ErrNoInvoiceCreator)
		return
	}
	req.APIKey = h.apiKey

	if err := s.Machine.NewInvoice(c.Request.Context(), req); err != nil {
		apperror.Respond(c, err)
		return
	}
	h.respondStep(c, http.StatusCreated, s)
}

func (h *SessionHandler) SubmitEmail(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, fmt.Errorf("%w: %v", apperror.ErrInvalidPayload, err))
		return
	}

	step, ok := s.Machine.Step().(payment.UserEmail)
	if !ok {
		apperror.Respond(c, fmt.Errorf("%w: %s", apperror.ErrActionNotOffered, ActionSubmitEmail))
		return
	}
	step.SubmitEmail(c.Request.Context(), req.Email)
	h.respondStep(c, http.StatusOK, s)
}

func (h *SessionHandler) SelectCurrency(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req currencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, fmt.Errorf("%w: %v", apperror.ErrInvalidPayload, err))
		return
	}

	step, ok := s.Machine.Step().(payment.Currency)
	if !ok {
		apperror.Respond(c, fmt.Errorf("%w: %s", apperror.ErrActionNotOffered, ActionSelectCurrency))
		return
	}
	step.Select(c.Request.Context(), req.Currency)
	h.respondStep(c, http.StatusOK, s)
}

func (h *SessionHandler) ChangeCurrency(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	step, ok := s.Machine.Step().(payment.Payment)
	if !ok || !step.CanChangeCurrency {
		apperror.Respond(c, fmt.Errorf("%w: %s", apperror.ErrActionNotOffered, ActionChangeCurrency))
		return
	}
	step.ChangeCurrency()
	h.respondStep(c, http.StatusOK, s)
}

func (h *SessionHandler) Reset(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Machine.Reset()
	h.respondStep(c, http.StatusOK, s)
}

func (h *SessionHandler) Start(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Machine.Start()
	h.respondStep(c, http.StatusOK, s)
}

func (h *SessionHandler) Stop(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Machine.Stop()
	h.respondStep(c, http.StatusOK, s)
}

func (h *SessionHandler) Close(c *gin.Context) {
	if err := h.manager.Close(c.Param("session_id")); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
