package notify

import "errors"

// Sentinel errors for the stages of one notification attempt. Handlers
// classify with errors.Is; every failure carries a descriptive message and
// none is downgraded to a silent false return.
var (
	ErrUnknownTrigger     = errors.New("unknown trigger")
	ErrRender             = errors.New("message render failure")
	ErrMalformedURL       = errors.New("malformed webhook URL")
	ErrConnection         = errors.New("webhook connection failure")
	ErrResponseRead       = errors.New("webhook response read failure")
	ErrUnexpectedResponse = errors.New("unexpected webhook response")
)
