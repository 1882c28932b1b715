package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/worttrainer/internal/cli"
	"codeberg.org/snonux/worttrainer/internal/logging"
	"codeberg.org/snonux/worttrainer/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	cli.ApplyConfig(cmd, flags)
	logger := logging.NewLogger(flags.LogLevel, flags.LogFormat, os.Stderr)

	proc := processor.NewProcessor(flags, logger)

	// Handle --archive flag
	if flags.Archive {
		return proc.ArchiveState()
	}

	// Handle --export flag
	if flags.ExportFile != "" {
		return proc.ExportAnki(cmd.Context())
	}

	// Handle --stats flag
	if flags.ShowStats {
		return proc.PrintStatistic(cmd.Context())
	}

	return proc.RunDrill(cmd.Context())
}
