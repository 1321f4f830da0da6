// Package agents defines the call-agent variants this worker can host. An
// agent is an immutable instruction string plus the tool registry presented to
// the model for the session.
package agents

import (
	"fmt"

	"voicedesk/tools"
)

type Agent struct {
	Name         string
	Instructions string
	Tools        *tools.Registry
}

// Names lists the selectable agent variants.
func Names() []string {
	return []string{"saudia", "lufthansa", "pizza"}
}

// ForName resolves an agent variant by its configuration name.
func ForName(name string) (*Agent, error) {
	switch name {
	case "saudia":
		return Saudia(), nil
	case "lufthansa":
		return Lufthansa(), nil
	case "pizza":
		return PizzaCombo(), nil
	}
	return nil, fmt.Errorf("unknown agent %q (expected one of %v)", name, Names())
}
