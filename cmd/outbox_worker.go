/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sj9102001/workly/internal/bootstrap"
	"github.com/sj9102001/workly/internal/config"
	"github.com/sj9102001/workly/internal/infra/messaging"
	"github.com/sj9102001/workly/internal/infra/persistence"
	"github.com/sj9102001/workly/internal/outbox"
)

var outboxCmd = &cobra.Command{
	Use:   "outbox-worker",
	Short: "Publish pending outbox events to NATS JetStream",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config error:", err)
			os.Exit(1)
		}
		log, err := bootstrap.BuildLogger(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "log error:", err)
			os.Exit(1)
		}

		db, err := bootstrap.OpenDB(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "db error:", err)
			os.Exit(1)
		}
		defer db.Close()

		natsClient, err := messaging.NewNATS(cmd.Context(), cfg.NATS)
		if err != nil {
			fmt.Fprintln(os.Stderr, "nats error:", err)
			os.Exit(1)
		}
		defer natsClient.Close()

		poller := outbox.NewPoller(
			persistence.NewOutboxRepository(db),
			natsClient,
			outbox.Config{
				BatchSize:      cfg.Outbox.BatchSize,
				PollInterval:   cfg.Outbox.PollInterval,
				LockTimeout:    cfg.Outbox.LockTimeout,
				PublishTimeout: cfg.Outbox.PublishTimeout,
				MaxAttempts:    cfg.Outbox.MaxAttempts,
			},
			log,
		)
		if err := poller.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "outbox-worker error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(outboxCmd)
}
