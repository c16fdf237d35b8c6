package config

const VERSION = "0.2.0"

// Config holds global application settings
type Config struct {
	Debug     bool
	SubmitJob bool
	Version   string

	QsubBin  string // Path to qsub
	JuliaBin string // Path to julia (empty = resolve from PATH)

	Account  string   // Default allocation code
	Modules  []string // Default environment modules, load order preserved
	Walltime string   // Default walltime (HH:MM:SS)
}

// Global holds the singleton configuration instance
var Global Config

// LoadDefaults resets Global to built-in defaults. Viper values and
// command-line flags are layered on top afterwards.
func LoadDefaults() {
	Global = Config{
		Debug:     false,
		SubmitJob: true,
		Version:   VERSION,
		Walltime:  "01:00:00",
	}
}
