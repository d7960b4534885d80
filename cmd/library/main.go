package main

import (
	"context"
	stdLog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/app"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("load envs from .env ", zap.Error(err))
	}

	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	return config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)
}

func rootCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the lifecycle scheduler",
		Run: func(cmd *cobra.Command, args []string) {
			app.Run(loadConfig())
		},
	}
	root := &cobra.Command{
		Use:          "library",
		Short:        "Seat booking, payments and subscription lifecycle",
		SilenceUsage: true,
		Run:          serve.Run,
	}
	root.AddCommand(serve,
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Migrate(cmd.Context(), loadConfig())
			},
		},
		&cobra.Command{
			Use:   "sweep",
			Short: "Run one notification, expiry and removal pass",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return app.Sweep(ctx, loadConfig())
			},
		},
	)
	return root
}
