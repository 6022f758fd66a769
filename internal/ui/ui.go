package ui

import (
	"github.com/wagoodman/go-partybus"
)

// UI reacts to events published on the bus while a command runs. The final event carries the report to show.
type UI interface {
	Setup(unsubscribe func() error) error
	partybus.Handler
	Teardown(force bool) error
}
