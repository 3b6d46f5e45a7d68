package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration  = errors.New("configuration error")
	ErrTransport      = errors.New("transport error")
	ErrSchema         = errors.New("schema error")
	ErrResolutionMiss = errors.New("resolution miss")
	ErrTimeout        = errors.New("timeout")
)

// Exit codes returned by the CLI for fatal error classes.
const (
	ExitFailure       = 1
	ExitConfiguration = 2
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above. A nil marker defaults to
// ErrTransport.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		if marker == ErrTransport && isDeadline(err) {
			return fmt.Errorf("%w: %w: %s: %w", marker, ErrTimeout, detail, err)
		}
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns the short tag name of the marker carried by err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrSchema):
		return "schema"
	case errors.Is(err, ErrResolutionMiss):
		return "resolution_miss"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return "unknown"
	}
}

// IsFatal reports whether err must abort the run. Resolution misses are the
// only tolerated class.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrResolutionMiss)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration):
		return ExitConfiguration
	default:
		return ExitFailure
	}
}

func isDeadline(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
