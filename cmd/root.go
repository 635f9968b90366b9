// Package cmd is the reposearch command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reposearch/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "reposearch",
	Short: "Search GitHub repositories from the terminal",
	Long: `reposearch is an interactive GitHub repository search. Type a query and
results are fetched once you stop typing; open a result to see its details.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// flagKeys maps config keys onto the persistent flags that override them
var flagKeys = map[string]string{
	"api_url":  "api-url",
	"token":    "token",
	"log_file": "debug-log",
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().String("api-url", "", "GitHub API base URL")
	rootCmd.PersistentFlags().String("token", "", "GitHub token (default $GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("debug-log", "", "write a debug log to this file")
}

// loadConfig resolves configuration for cmd from the config file, the
// environment and its flags.
func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")

	v := viper.New()
	config.Setup(v, path)
	if err := config.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return config.Config{}, "", err
	}
	cfg, used, err := config.Load(v)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, used, nil
}

// setupLogging routes the standard logger to path, or discards it so log
// lines never land on the TUI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "reposearch")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

// runTUI starts the interactive search screen
func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, used, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	a, err := newApp(cfg, used)
	if err != nil {
		return err
	}
	defer a.Close()

	p := tea.NewProgram(a.model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	a.model.SetProgram(p)

	log.Printf("starting TUI against %s", cfg.APIURL)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
