package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSettings() *Settings {
	return &Settings{
		WebServer: WebServerSettings{
			Host:      "0.0.0.0",
			Port:      "8080",
			RateLimit: 5,
		},
		Output: OutputSettings{
			SQLite:  SQLiteSettings{Enabled: true, Path: "riceguard.db"},
			Uploads: "uploads/",
			Results: "uploads/results/",
			Reports: "reports/",
		},
		RiceNET: RiceNETSettings{
			ModelPath: "model/riceguard.tflite",
			Threshold: 0.25,
			InputSize: 640,
		},
	}
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"valid", func(s *Settings) {}, ""},
		{"empty port", func(s *Settings) { s.WebServer.Port = "" }, "webserver.port"},
		{"non-numeric port", func(s *Settings) { s.WebServer.Port = "http" }, "webserver.port"},
		{"port out of range", func(s *Settings) { s.WebServer.Port = "70000" }, "webserver.port"},
		{"negative ratelimit", func(s *Settings) { s.WebServer.RateLimit = -1 }, "webserver.ratelimit"},
		{"sqlite enabled without path", func(s *Settings) { s.Output.SQLite.Path = "" }, "output.sqlite.path"},
		{"empty uploads", func(s *Settings) { s.Output.Uploads = "" }, "output.uploads"},
		{"empty reports", func(s *Settings) { s.Output.Reports = "" }, "output.reports"},
		{"empty model path", func(s *Settings) { s.RiceNET.ModelPath = "" }, "ricenet.modelpath"},
		{"threshold above one", func(s *Settings) { s.RiceNET.Threshold = 1.5 }, "ricenet.threshold"},
		{"zero input size", func(s *Settings) { s.RiceNET.InputSize = 0 }, "ricenet.inputsize"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := validSettings()
			tt.mutate(s)
			err := ValidateSettings(s)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
