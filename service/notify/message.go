package notify

import (
	"encoding/json"
	"fmt"
)

// failedNodesPlaceholder is rendered when a failed execution reports no
// per-node detail.
const failedNodesPlaceholder = "- (Job itself failed)"

// Execution is the caller-supplied context of one job execution. It is read
// verbatim into the message; the notifier never mutates it.
type Execution struct {
	JobName       string `json:"jobName"`
	JobHref       string `json:"jobHref"`
	ExecutionID   string `json:"executionId"`
	ExecutionHref string `json:"executionHref"`
	Project       string `json:"project"`
	FailedNodes   string `json:"failedNodes,omitempty"`
}

// Message is the Slack incoming-webhook payload.
type Message struct {
	Attachments []Attachment `json:"attachments"`
}

type Attachment struct {
	Fallback string  `json:"fallback"`
	Pretext  string  `json:"pretext"`
	Color    string  `json:"color"`
	Fields   []Field `json:"fields"`
}

type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// renderMessage builds the webhook payload for one execution event and
// serializes it to the wire string. Output is deterministic for identical
// inputs. A serialization failure is fatal to the invocation; no partial
// message is ever produced.
func renderMessage(trigger Trigger, exec Execution) (string, error) {
	p := presentations[trigger]

	executionLink := fmt.Sprintf("<%s|#%s>", exec.ExecutionHref, exec.ExecutionID)
	jobLink := fmt.Sprintf("<%s|%s>", exec.JobHref, exec.JobName)
	headline := fmt.Sprintf("%s: %s of job %s", p.state, executionLink, jobLink)

	fields := []Field{
		{Title: "Job Name", Value: jobLink, Short: true},
		{Title: "Project", Value: exec.Project, Short: true},
		{Title: "Status", Value: p.state, Short: true},
		{Title: "Execution ID", Value: executionLink, Short: true},
	}
	if trigger == TriggerFailure {
		nodes := exec.FailedNodes
		if nodes == "" {
			nodes = failedNodesPlaceholder
		}
		fields = append(fields, Field{Title: "Failed Nodes", Value: nodes})
	}

	message := Message{
		Attachments: []Attachment{{
			Fallback: headline,
			Pretext:  headline,
			Color:    p.color,
			Fields:   fields,
		}},
	}

	body, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("%w: encode attachment payload: %v", ErrRender, err)
	}
	return string(body), nil
}
