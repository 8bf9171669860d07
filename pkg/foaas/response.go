package foaas

import (
	"encoding/json"
	"fmt"
)

// ErrorSubtitle is the subtitle of every locally synthesized error Response.
const ErrorSubtitle = "error"

// Response is the body shape shared by every endpoint and by error fallbacks.
type Response struct {
	Message  string `json:"message" yaml:"message"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
}

// UnmarshalJSON requires both fields to be present and non-null.
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw struct {
		Message  *string `json:"message"`
		Subtitle *string `json:"subtitle"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Message == nil:
		return fmt.Errorf("%w: message", ErrMissingField)
	case raw.Subtitle == nil:
		return fmt.Errorf("%w: subtitle", ErrMissingField)
	}
	r.Message, r.Subtitle = *raw.Message, *raw.Subtitle
	return nil
}

// IsError reports whether r carries a synthesized failure.
func (r Response) IsError() bool {
	return r.Subtitle == ErrorSubtitle
}

func (r Response) String() string {
	return r.Message + " - " + r.Subtitle
}

// Fallback maps any failure to the error-shaped Response.
func Fallback(err error) Response {
	return Response{
		Message:  "Error: " + err.Error(),
		Subtitle: ErrorSubtitle,
	}
}
