package server

import (
	"net/http"
	"net/url"
	"time"

	"jobhook/service/util"
)

type healthResponse struct {
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	WebhookHost string `json:"webhookHost,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Version: s.version,
		Uptime:  formatUptime(time.Since(s.startTime)),
	}

	// Only the host is reported; the token never leaves the process.
	if parsed, err := url.Parse(s.cfg.WebhookBaseURL); err == nil {
		resp.WebhookHost = parsed.Host
	}

	util.WriteJSON(w, s.logger, resp)
}

func formatUptime(d time.Duration) string {
	return d.Round(time.Second).String()
}
