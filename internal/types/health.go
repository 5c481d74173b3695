package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// HealthState is the coarse health of a dependency such as the graph store.
type HealthState string

const (
	HealthStateHealthy   HealthState = "healthy"
	HealthStateDegraded  HealthState = "degraded"
	HealthStateUnhealthy HealthState = "unhealthy"
)

func (s HealthState) String() string {
	return string(s)
}

// IsValid checks if the HealthState is a known value.
func (s HealthState) IsValid() bool {
	switch s {
	case HealthStateHealthy, HealthStateDegraded, HealthStateUnhealthy:
		return true
	default:
		return false
	}
}

// UnmarshalJSON rejects unknown states.
func (s *HealthState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	state := HealthState(str)
	if !state.IsValid() {
		return fmt.Errorf("invalid health state: %s", str)
	}

	*s = state
	return nil
}

// HealthStatus is the result of a single health probe.
type HealthStatus struct {
	State     HealthState `json:"state" yaml:"state"`
	Message   string      `json:"message,omitempty" yaml:"message,omitempty"`
	CheckedAt time.Time   `json:"checked_at" yaml:"checked_at"`
}

// NewHealthStatus stamps a status with the current time.
func NewHealthStatus(state HealthState, message string) HealthStatus {
	return HealthStatus{
		State:     state,
		Message:   message,
		CheckedAt: time.Now(),
	}
}

func Healthy(message string) HealthStatus {
	return NewHealthStatus(HealthStateHealthy, message)
}

func Degraded(message string) HealthStatus {
	return NewHealthStatus(HealthStateDegraded, message)
}

func Unhealthy(message string) HealthStatus {
	return NewHealthStatus(HealthStateUnhealthy, message)
}

func (h HealthStatus) IsHealthy() bool {
	return h.State == HealthStateHealthy
}
