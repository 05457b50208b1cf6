package codec

import "fmt"

// DecodeError reports a stored payload that is not valid for its entity
// kind. Absent payloads never produce one.
type DecodeError struct {
	Kind string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
