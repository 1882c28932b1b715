package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	WordFile  string
	StateFile string
	Order     string
	Reset     bool
	Archive   bool
	ShowStats bool

	// Export flags
	ExportFile string

	// Logging flags
	LogLevel  string
	LogFormat string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Order:     "random",
		LogLevel:  "warn",
		LogFormat: "text",
	}
}
