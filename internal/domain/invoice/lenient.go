package invoice

import (
	"bytes"
	"fmt"
	"strconv"
)

// lenientInt decodes integers that the API sometimes sends quoted.
type lenientInt int64

func (n *lenientInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	b = bytes.Trim(b, `"`)
	if len(b) == 0 {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(string(b), 64)
		if ferr != nil {
			return fmt.Errorf("decode integer %q: %w", b, err)
		}
		v = int64(f)
	}
	*n = lenientInt(v)
	return nil
}

// lenientBool decodes booleans sent as true/false, 0/1 or their quoted forms.
type lenientBool bool

func (v *lenientBool) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	switch string(b) {
	case "true", "1":
		*v = true
	case "false", "0", "", "null":
		*v = false
	default:
		return fmt.Errorf("decode boolean %q", b)
	}
	return nil
}
