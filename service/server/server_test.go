package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"jobhook/service/config"
	"jobhook/service/notify"
)

func newTestServer(webhookBaseURL string) *Server {
	cfg := &config.Config{
		Port:           0,
		APIKey:         "secret",
		RateLimit:      100,
		WebhookBaseURL: webhookBaseURL,
		WebhookToken:   "T0/B0/X0",
		RequestTimeout: 5,
	}
	return New(cfg, "test")
}

func doRequest(s *Server, method, target, body, apiKey string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func capturedAttachment(t *testing.T, formBody string) notify.Attachment {
	t.Helper()
	values, err := url.ParseQuery(formBody)
	if err != nil {
		t.Fatalf("parse captured form body: %v", err)
	}
	var message notify.Message
	if err := json.Unmarshal([]byte(values.Get("payload")), &message); err != nil {
		t.Fatalf("decode captured payload: %v", err)
	}
	if len(message.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(message.Attachments))
	}
	return message.Attachments[0]
}

func TestHandleNotifyStartDeliversToWebhook(t *testing.T) {
	var gotPath, gotBody string
	slack := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte("ok"))
	}))
	defer slack.Close()

	s := newTestServer(slack.URL)
	exec := `{"jobName":"Deploy","jobHref":"http://host/job/1","executionId":"42","executionHref":"http://host/exec/42","project":"infra"}`
	rec := doRequest(s, http.MethodPost, "/notify/start", exec, "secret")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotPath != "/T0/B0/X0" {
		t.Fatalf("expected webhook POST to /T0/B0/X0, got %s", gotPath)
	}

	att := capturedAttachment(t, gotBody)
	if att.Color != "warning" {
		t.Fatalf("expected color warning, got %q", att.Color)
	}
	for _, field := range att.Fields {
		if field.Title == "Status" && field.Value != "Started" {
			t.Fatalf("expected Status Started, got %q", field.Value)
		}
	}

	var resp struct {
		ID      string `json:"id"`
		Trigger string `json:"trigger"`
		Sent    bool   `json:"sent"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Sent || resp.Trigger != "start" || resp.ID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleNotifyFailureRendersFailedNodes(t *testing.T) {
	var gotBody string
	slack := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte("ok"))
	}))
	defer slack.Close()

	s := newTestServer(slack.URL)
	exec := `{"jobName":"Deploy","project":"infra","failedNodes":"node-a, node-b"}`
	rec := doRequest(s, http.MethodPost, "/notify/failure", exec, "secret")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	att := capturedAttachment(t, gotBody)
	found := false
	for _, field := range att.Fields {
		if field.Title == "Failed Nodes" {
			found = true
			if field.Value != "node-a, node-b" {
				t.Fatalf("expected failed nodes %q, got %q", "node-a, node-b", field.Value)
			}
		}
	}
	if !found {
		t.Fatal("failure payload missing Failed Nodes field")
	}
}

func TestHandleNotifyRejectsUnknownTrigger(t *testing.T) {
	slack := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("webhook must not be called for unknown trigger")
	}))
	defer slack.Close()

	s := newTestServer(slack.URL)
	rec := doRequest(s, http.MethodPost, "/notify/aborted", `{"jobName":"Deploy"}`, "secret")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleNotifyRejectsInvalidBody(t *testing.T) {
	s := newTestServer("https://hooks.slack.com/services")
	rec := doRequest(s, http.MethodPost, "/notify/start", `{"jobName":`, "secret")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleNotifySurfacesWebhookRejection(t *testing.T) {
	slack := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("invalid_token"))
	}))
	defer slack.Close()

	s := newTestServer(slack.URL)
	rec := doRequest(s, http.MethodPost, "/notify/success", `{"jobName":"Deploy"}`, "secret")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_token") {
		t.Fatalf("response %q does not carry remote diagnostic", rec.Body.String())
	}
}

func TestNotifyRequiresAuth(t *testing.T) {
	s := newTestServer("https://hooks.slack.com/services")

	rec := doRequest(s, http.MethodPost, "/notify/start", `{"jobName":"Deploy"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}

	rec = doRequest(s, http.MethodPost, "/notify/start", `{"jobName":"Deploy"}`, "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", rec.Code)
	}
}

func TestHandleProperties(t *testing.T) {
	s := newTestServer("https://hooks.slack.com/services")

	rec := doRequest(s, http.MethodGet, "/properties", "", "secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var props []notify.Property
	if err := json.Unmarshal(rec.Body.Bytes(), &props); err != nil {
		t.Fatalf("decode properties: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(props))
	}

	if rec := doRequest(s, http.MethodGet, "/properties", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer("https://hooks.slack.com/services")

	rec := doRequest(s, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if resp.Version != "test" {
		t.Fatalf("unexpected version %q", resp.Version)
	}
	if resp.WebhookHost != "hooks.slack.com" {
		t.Fatalf("unexpected webhook host %q", resp.WebhookHost)
	}
}
