package llm

import "fmt"

// ConfigurationError reports a missing or invalid credential or setting. It
// is returned synchronously, before any network activity.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "internal configuration error: " + e.Reason
}

// UnsupportedProviderError is returned by the factory for unknown provider
// ids.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported chat provider: %s", e.Provider)
}

// TransportError reports an HTTP or stream failure. Its message is surfaced
// to the user verbatim.
type TransportError struct {
	Message string
}

func (e *TransportError) Error() string {
	return e.Message
}

// UnknownError hides an unclassified cause behind a generic message.
type UnknownError struct {
	Cause error
}

func (e *UnknownError) Error() string {
	return "An unknown error occurred."
}

func (e *UnknownError) Unwrap() error {
	return e.Cause
}

// WrapUnknown passes classified errors through untouched and wraps anything
// else (including nil) as UnknownError.
func WrapUnknown(err error) error {
	switch err.(type) {
	case *ConfigurationError, *UnsupportedProviderError, *TransportError, *UnknownError:
		return err
	default:
		return &UnknownError{Cause: err}
	}
}
