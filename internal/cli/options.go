package cli

import "time"

type Options struct {
	BaseURL      string
	ImageBaseURL string
	SettingsFile string
	LogFile      string
	JSON         bool
	Debug        bool
	Timeout      time.Duration
}
