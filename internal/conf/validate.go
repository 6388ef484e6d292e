package conf

import (
	"fmt"
	"strconv"
)

// ValidateSettings checks the loaded configuration for values the server
// cannot start with.
func ValidateSettings(settings *Settings) error {
	if err := validateWebServerSettings(&settings.WebServer); err != nil {
		return err
	}
	if err := validateOutputSettings(&settings.Output); err != nil {
		return err
	}
	return validateRiceNETSettings(&settings.RiceNET)
}

func validateWebServerSettings(ws *WebServerSettings) error {
	if ws.Port == "" {
		return fmt.Errorf("webserver.port must not be empty")
	}
	port, err := strconv.Atoi(ws.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("webserver.port must be a number between 1 and 65535, got %q", ws.Port)
	}
	if ws.RateLimit < 0 {
		return fmt.Errorf("webserver.ratelimit must not be negative, got %d", ws.RateLimit)
	}
	return nil
}

func validateOutputSettings(out *OutputSettings) error {
	if out.SQLite.Enabled && out.SQLite.Path == "" {
		return fmt.Errorf("output.sqlite.path must not be empty when SQLite is enabled")
	}
	if out.Uploads == "" {
		return fmt.Errorf("output.uploads must not be empty")
	}
	if out.Results == "" {
		return fmt.Errorf("output.results must not be empty")
	}
	if out.Reports == "" {
		return fmt.Errorf("output.reports must not be empty")
	}
	return nil
}

func validateRiceNETSettings(rn *RiceNETSettings) error {
	if rn.ModelPath == "" {
		return fmt.Errorf("ricenet.modelpath must not be empty")
	}
	if rn.Threshold < 0.0 || rn.Threshold > 1.0 {
		return fmt.Errorf("ricenet.threshold must be between 0.0 and 1.0, got %g", rn.Threshold)
	}
	if rn.Threads < 0 {
		return fmt.Errorf("ricenet.threads must not be negative, got %d", rn.Threads)
	}
	if rn.InputSize <= 0 {
		return fmt.Errorf("ricenet.inputsize must be positive, got %d", rn.InputSize)
	}
	return nil
}
