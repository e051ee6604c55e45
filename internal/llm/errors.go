package llm

import "fmt"

// ConfigError indicates a missing or unusable credential. It will not resolve
// with retries and should degrade to the heuristic path.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

func NewConfigError(err error) error { return &ConfigError{Err: err} }

// UpstreamError indicates a non-2xx response or a timed-out call to the model
// provider. Status is zero when no HTTP response was received.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm upstream: %v", e.Err)
	}
	return fmt.Sprintf("llm upstream: HTTP %d: %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
