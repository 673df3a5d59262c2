package invoice

import (
	"encoding/json"
	"slices"
)

type Status string

const (
	StatusUndefined          Status = "undefined"
	StatusNew                Status = "new"
	StatusPending            Status = "pending"
	StatusPendingInternal    Status = "pending internal"
	StatusExpired            Status = "expired"
	StatusCompleted          Status = "completed"
	StatusMismatch           Status = "mismatch"
	StatusError              Status = "error"
	StatusCancelled          Status = "cancelled"
	StatusCancelledDuplicate Status = "cancelled duplicate"
)

var AvailableStatuses = []Status{
	StatusUndefined, StatusNew, StatusPending, StatusPendingInternal, StatusExpired,
	StatusCompleted, StatusMismatch, StatusError, StatusCancelled, StatusCancelledDuplicate,
}

var inProgressStatuses = []Status{
	StatusUndefined, StatusNew, StatusPending, StatusPendingInternal, StatusCancelledDuplicate,
}

// Status codes reported next to the status.
const (
	StatusCodePartialPayment         StatusCode = 2
	StatusCodeReplacedWithNewInvoice StatusCode = 111
)

// StatusCode is the numeric sub-state of an invoice.
type StatusCode int

func (c *StatusCode) UnmarshalJSON(b []byte) error {
	var n lenientInt
	if err := n.UnmarshalJSON(b); err != nil {
		return err
	}
	*c = StatusCode(n)
	return nil
}

// NewStatus maps a wire value to a Status. Unknown values become StatusUndefined.
func NewStatus(raw string) Status {
	if slices.Contains(AvailableStatuses, Status(raw)) {
		return Status(raw)
	}
	return StatusUndefined
}

// Normalize maps the zero value and unknown values to StatusUndefined.
func (s Status) Normalize() Status {
	return NewStatus(string(s))
}

func (s Status) IsInProgress() bool {
	return slices.Contains(inProgressStatuses, s.Normalize())
}

func (s Status) IsFinished() bool {
	return !s.IsInProgress()
}

// Indicator is the coarse bucket used by status badges.
type Indicator string

const (
	IndicatorProgress  Indicator = "progress"
	IndicatorCompleted Indicator = "completed"
	IndicatorError     Indicator = "error"
)

func (s Status) Indicator() Indicator {
	switch s.Normalize() {
	case StatusCompleted, StatusMismatch:
		return IndicatorCompleted
	case StatusError, StatusCancelled, StatusExpired:
		return IndicatorError
	default:
		return IndicatorProgress
	}
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil || raw == nil {
		*s = StatusUndefined
		return nil
	}
	*s = NewStatus(*raw)
	return nil
}
