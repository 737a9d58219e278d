package player

import (
	"fmt"
	"time"
)

type (
	// Alert is a user facing notification, e.g. a track that could not be
	// bound to its output. Alerts with the same Name replace each other in a
	// user interface.
	Alert struct {
		Name     string
		Priority AlertPriority
		Message  string
		Duration time.Duration
	}

	AlertPriority int
)

const (
	None AlertPriority = iota
	Info
	Warning
	Error
)

const defaultAlertDuration = 3 * time.Second

func (a AlertPriority) String() string {
	switch a {
	case None:
		return "none"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("AlertPriority(%d)", int(a))
}

func (a Alert) String() string {
	return fmt.Sprintf("[%v] %s", a.Priority, a.Message)
}
