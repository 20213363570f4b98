// Package emulator checks whether a local Firebase Auth emulator answers.
package emulator

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Status represents the reachability of the emulator
type Status int

const (
	StatusUnknown Status = iota
	StatusUp
	StatusDown
	StatusDisabled
)

func (s Status) String() string {
	switch s {
	case StatusUp:
		return "up"
	case StatusDown:
		return "down"
	case StatusDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// DefaultTimeout bounds a single health request.
const DefaultTimeout = 2 * time.Second

// Check reports whether the Auth emulator at host (host:port) answers.
// An empty host means no emulator is configured.
func Check(ctx context.Context, host string) Status {
	if host == "" {
		return StatusDisabled
	}
	return checkHealth(ctx, fmt.Sprintf("http://%s/", host))
}

func checkHealth(ctx context.Context, url string) Status {
	client := &http.Client{
		Timeout: DefaultTimeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return StatusUnknown
	}

	resp, err := client.Do(req)
	if err != nil {
		return StatusDown
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return StatusUp
	}

	return StatusDown
}
