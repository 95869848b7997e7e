/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/interviewqa/apiserver/internal/bootstrap"
	"github.com/interviewqa/apiserver/internal/functions"
	"github.com/interviewqa/apiserver/internal/mq"
)

// functionsCmd represents the functions command
var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "Serves API operations as message-driven functions",
	Long: `Consumes invocations from the configured message broker and publishes
one reply per invocation. Usage:

	apiserver functions
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := bootstrap.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			_ = app.Close(context.Background())
		}()

		backend, err := mq.New(ctx, cfg.MQ)
		if err != nil {
			return fmt.Errorf("init mq backend: %w", err)
		}
		defer func() {
			_ = backend.Close()
		}()

		dispatcher := functions.NewDispatcher(functions.Services{
			Jobs:      app.Jobs,
			SubJobs:   app.SubJobs,
			Questions: app.Questions,
			Auth:      app.Auth,
		}, slog.Default())
		consumer := functions.NewConsumer(backend, dispatcher, cfg.MQ.InvocationChannel, cfg.MQ.ReplyChannel, slog.Default())

		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		slog.Info("functions consumer stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(functionsCmd)
}
