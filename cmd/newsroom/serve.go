package main

import (
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/newsroom/internal/router"
	"github.com/DjordjeVuckovic/newsroom/internal/server"
	"github.com/DjordjeVuckovic/newsroom/internal/workspace"
	pkgserver "github.com/DjordjeVuckovic/newsroom/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the workspace API for a browser front end",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		healthChecker := pkgserver.NewPingHealthChecker(a.client, 0)
		s := server.New(&cfg.Server, healthChecker).
			SetupMiddlewares().
			SetupErrorHandler().
			SetupHealthChecks(server.DefaultHealthPath)

		s.Echo.GET("/", func(c echo.Context) error {
			return c.String(http.StatusOK, "NewsRoom workspace API is running")
		})

		if outcome := a.workspace.LoadArticles(s.Context()); outcome != workspace.OutcomeOK {
			slog.Warn("Initial article load failed", "outcome", outcome)
		}

		router.NewWorkspaceRouter(s.Echo, a.workspace, router.WithEditor(a.client)).Bind()
		router.NewAuthRouter(s.Echo, a.auth).Bind()

		go func() {
			<-s.ShutdownSignal()
			slog.Info("Shutdown started, cleaning up resources...")
		}()

		return s.Start()
	},
}
