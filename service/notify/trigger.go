package notify

import "fmt"

// Trigger is the job-lifecycle event kind that initiates a notification.
type Trigger string

const (
	TriggerStart   Trigger = "start"
	TriggerSuccess Trigger = "success"
	TriggerFailure Trigger = "failure"
)

// Slack attachment color tags.
const (
	colorGood    = "good"
	colorWarning = "warning"
	colorDanger  = "danger"
)

// presentation controls how a trigger's message looks: the attachment color
// and the status label rendered into the payload.
type presentation struct {
	state string
	color string
}

// presentations is populated once and only read afterwards, so concurrent
// invocations can share it without synchronization.
var presentations = map[Trigger]presentation{
	TriggerStart:   {state: "Started", color: colorWarning},
	TriggerSuccess: {state: "Succeeded", color: colorGood},
	TriggerFailure: {state: "Failed", color: colorDanger},
}

// ParseTrigger validates a trigger name against the known set. Matching is
// case-exact; anything else fails with ErrUnknownTrigger.
func ParseTrigger(name string) (Trigger, error) {
	trigger := Trigger(name)
	if _, ok := presentations[trigger]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTrigger, name)
	}
	return trigger, nil
}
