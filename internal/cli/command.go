package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/worttrainer/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "worttrainer",
		Short: "Picture based spelling trainer",
		Long: `worttrainer shows a picture and asks for the word it depicts.

Correct and incorrect guesses are counted, and the word list, current
word and score are kept between runs.

Examples:
  worttrainer                     # Drill the saved or built-in words
  worttrainer --words fruit.txt   # Drill words from a file ("Apple = https://...")
  worttrainer --stats             # Show the score and exit
  worttrainer --export deck.csv   # Export the words for Anki`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// DefaultStateFile returns the default location of the state database.
func DefaultStateFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "worttrainer", "state.db")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.worttrainer.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.WordFile, "words", "w", "", "Word list to drill (one 'word = image-url' per line), replaces the saved list")
	cmd.Flags().StringVarP(&flags.StateFile, "state", "s", DefaultStateFile(), "State database")
	cmd.Flags().StringVar(&flags.Order, "order", flags.Order, "Word order: random or sequential")
	cmd.Flags().BoolVar(&flags.Reset, "reset", false, "Reset the score before drilling")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the state database to the archive and exit")
	cmd.Flags().BoolVar(&flags.ShowStats, "stats", false, "Print the score and recent guesses, then exit")

	// Export flags
	cmd.Flags().StringVar(&flags.ExportFile, "export", "", "Write the word list as an Anki import CSV and exit")

	// Logging flags
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("words.file", cmd.Flags().Lookup("words"))
	viper.BindPFlag("state.file", cmd.Flags().Lookup("state"))
	viper.BindPFlag("drill.order", cmd.Flags().Lookup("order"))
	viper.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.Flags().Lookup("log-format"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".worttrainer" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".worttrainer")
	}

	// Environment variables
	viper.SetEnvPrefix("WORTTRAINER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ApplyConfig copies values from the config file and environment into flags
// that were not given on the command line.
func ApplyConfig(cmd *cobra.Command, flags *Flags) {
	settings := []struct {
		flag  string
		key   string
		value *string
	}{
		{"words", "words.file", &flags.WordFile},
		{"state", "state.file", &flags.StateFile},
		{"order", "drill.order", &flags.Order},
		{"log-level", "log.level", &flags.LogLevel},
		{"log-format", "log.format", &flags.LogFormat},
	}

	for _, s := range settings {
		if cmd.Flags().Changed(s.flag) {
			continue
		}
		if v := viper.GetString(s.key); v != "" {
			*s.value = v
		}
	}
}
