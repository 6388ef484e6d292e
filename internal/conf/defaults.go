// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("webserver.host", "0.0.0.0")
	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.debug", false)
	viper.SetDefault("webserver.admintoken", "")
	viper.SetDefault("webserver.ratelimit", 5)

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "riceguard.db")
	viper.SetDefault("output.uploads", "uploads/")
	viper.SetDefault("output.results", "uploads/results/")
	viper.SetDefault("output.reports", "reports/")
	viper.SetDefault("output.logs", "logs/")

	viper.SetDefault("ricenet.modelpath", "model/riceguard.tflite")
	viper.SetDefault("ricenet.labelpath", "")
	viper.SetDefault("ricenet.threshold", 0.25)
	viper.SetDefault("ricenet.threads", 0)
	viper.SetDefault("ricenet.usexnnpack", true)
	viper.SetDefault("ricenet.inputsize", 640)
}
