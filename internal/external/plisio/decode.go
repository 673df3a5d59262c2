package plisio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"PlisioPay/internal/domain/invoice"
)

const statusError = "error"

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// decodeResponse maps a Plisio response onto out or onto one of the invoice error types.
func decodeResponse(statusCode int, requestURL string, body []byte, out any) error {
	switch {
	case statusCode == http.StatusNotFound:
		return &invoice.NotFoundError{URL: requestURL}
	case statusCode >= 200 && statusCode < 300:
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return &invoice.ResponseTextError{Cause: err, ResponseText: string(body)}
		}
		if env.Status == statusError {
			return decodeAPIError(env.Data, body)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &invoice.ResponseTextError{Cause: err, ResponseText: string(body)}
		}
		return nil
	default:
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return &invoice.ResponseTextError{Cause: err, ResponseText: string(body)}
		}
		return decodeAPIError(env.Data, body)
	}
}

func decodeAPIError(data json.RawMessage, body []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return &invoice.ResponseTextError{Cause: errors.New("missing error data"), ResponseText: string(body)}
	}

	var apiErr invoice.APIError
	if err := json.Unmarshal(data, &apiErr); err != nil {
		return &invoice.ResponseTextError{Cause: err, ResponseText: string(body)}
	}

	if strings.HasPrefix(apiErr.Message, "{") {
		msg, err := firstFieldMessage(apiErr.Message)
		if err != nil {
			return &invoice.ResponseTextError{Cause: err, ResponseText: string(body)}
		}
		apiErr.Message = msg
	}
	return &apiErr
}

// firstFieldMessage reduces a validation message such as {"email":["Invalid email"]}
// to the first element of its first array value, in document order.
// A first value that is not an array yields an empty message.
func firstFieldMessage(raw string) (string, error) {
	if !json.Valid([]byte(raw)) {
		return "", errors.New("message is not valid json")
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return "", err
	}
	if !dec.More() {
		return "", nil
	}
	if _, err := dec.Token(); err != nil { // key
		return "", fmt.Errorf("decode message key: %w", err)
	}

	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("decode message value: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return "", nil
	}
	if !dec.More() {
		return "", errors.New("empty message array")
	}

	first, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("decode message element: %w", err)
	}
	switch v := first.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return fmt.Sprint(v), nil
	case json.Delim:
		return "", fmt.Errorf("message element is not a primitive: %v", v)
	default:
		return "", nil
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("decode message: expected %q, got %v", want, tok)
	}
	return nil
}
