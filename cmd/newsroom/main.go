// Command newsroom is the NewsRoom AI editorial assistant: bias analysis and
// neutral rewrites of news articles from the terminal, or as a local
// workspace API for a browser front end.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	configFile string
	debugMode  bool

	cfg *NewsroomConfig
)

var rootCmd = &cobra.Command{
	Use:           "newsroom",
	Short:         "Bias analysis and neutral rewrites of news articles",
	Long:          `NewsRoom AI scores news articles for bias, explains the score and rewrites them neutrally.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd)

		loaded, err := NewAppConfig().Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML settings file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		analyzeCmd,
		rewriteCmd,
		articlesCmd,
		showCmd,
		deleteCmd,
		saveCmd,
		downloadCmd,
		shareCmd,
		loginCmd,
		registerCmd,
		logoutCmd,
		forgotPasswordCmd,
		resetPasswordCmd,
		whoamiCmd,
		serveCmd,
	)
}

// setupLogging keeps one-shot commands quiet unless asked. The server logs at
// info.
func setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if cmd == serveCmd {
		level = slog.LevelInfo
	}
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") || debugMode {
		level = slog.LevelDebug
	}
	slog.SetLogLoggerLevel(level)
}

func withApp(fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, a, cmd, args)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
