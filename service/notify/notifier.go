package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	userAgent = "Jobhook/1.0"

	// DefaultWebhookBaseURL is the Slack incoming-webhook service root.
	DefaultWebhookBaseURL = "https://hooks.slack.com/services"

	// successBody is the literal body the webhook answers on an accepted
	// delivery. The HTTP status code is not part of the contract.
	successBody = "ok"
)

// Config carries the webhook destination settings for a Notifier.
type Config struct {
	WebhookBaseURL string
	WebhookToken   string
}

// Notifier delivers job-lifecycle notifications to a Slack incoming
// webhook. One synchronous POST per call, no retries, no shared mutable
// state; safe for concurrent use.
type Notifier struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// New builds a Notifier. The timeout bounds the whole webhook exchange;
// values <= 0 fall back to 10 seconds.
func New(cfg Config, timeout time.Duration, logger *slog.Logger) *Notifier {
	if cfg.WebhookBaseURL == "" {
		cfg.WebhookBaseURL = DefaultWebhookBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Send renders the message for one execution event and posts it to the
// webhook. A nil return means the remote endpoint confirmed delivery;
// every failure is classified by one of the package sentinel errors.
func (n *Notifier) Send(ctx context.Context, trigger string, exec Execution) error {
	resolved, err := ParseTrigger(trigger)
	if err != nil {
		return err
	}

	message, err := renderMessage(resolved, exec)
	if err != nil {
		return err
	}

	if err := n.deliver(ctx, message); err != nil {
		return err
	}

	n.logger.Debug("Delivered webhook notification",
		"trigger", resolved,
		"job", exec.JobName,
		"execution", exec.ExecutionID,
	)
	return nil
}

// deliver posts the rendered message as the single form field "payload"
// and interprets the remote response body.
func (n *Notifier) deliver(ctx context.Context, message string) error {
	endpoint, err := n.webhookURL()
	if err != nil {
		return err
	}

	form := url.Values{"payload": {message}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrMalformedURL, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResponseRead, err)
	}

	// Success is the body text alone, regardless of status code. The error
	// echoes the remote body and the outgoing form payload so operators can
	// see both sides of a rejected delivery.
	if string(body) != successBody {
		return fmt.Errorf("%w: [%s]\n%s", ErrUnexpectedResponse, string(body), form)
	}
	return nil
}

// webhookURL joins the configured base URL and token and validates the
// result before any connection is attempted.
func (n *Notifier) webhookURL() (string, error) {
	endpoint := n.cfg.WebhookBaseURL + "/" + n.cfg.WebhookToken
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrMalformedURL, endpoint, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedURL, endpoint)
	}
	return endpoint, nil
}
