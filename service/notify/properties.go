package notify

// Property is one host-facing configuration field, described the way
// notification hosts expect registration metadata: display title, help
// text, whether the field is required and whether its value is a secret.
type Property struct {
	Key          string `json:"key"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Required     bool   `json:"required"`
	Secret       bool   `json:"secret"`
	DefaultValue string `json:"defaultValue,omitempty"`
}

// ConfigProperties describes the notifier's configuration surface. The
// descriptors are registration metadata only; the core never reads them.
func ConfigProperties() []Property {
	return []Property{
		{
			Key:          "webhook_base_url",
			Title:        "WebHook Base URL",
			Description:  "Slack Incoming WebHook Base URL",
			Required:     true,
			DefaultValue: DefaultWebhookBaseURL,
		},
		{
			Key:         "webhook_token",
			Title:       "WebHook Token",
			Description: "WebHook Token, like T00000000/B00000000/XXXXXXXXXXXXXXXXXXXXXXXX",
			Required:    true,
			Secret:      true,
		},
	}
}
