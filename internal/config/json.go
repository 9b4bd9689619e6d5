package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/hkaraca/rmosdesk/internal/flagx"
	"github.com/hkaraca/rmosdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds. Zero values mean "not set" and leave the
// corresponding Config field untouched.
type JsonConfig struct {
	APIBaseURL      string         `json:"api_base_url"`
	AuthBaseURL     string         `json:"auth_base_url"`
	SessionFile     string         `json:"session_file"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	NotificationTTL timex.Duration `json:"notification_ttl"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c or -config flags; when neither is given, nothing
// is loaded. Read or unmarshal errors panic, matching parseFlags.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.AuthBaseURL != "" {
		cfg.AuthBaseURL = jc.AuthBaseURL
	}
	if jc.SessionFile != "" {
		cfg.SessionFile = jc.SessionFile
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.NotificationTTL.Duration != 0 {
		cfg.NotificationTTL = time.Duration(jc.NotificationTTL.Duration)
	}
}
