/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/sj9102001/workly/internal/bootstrap"
	"github.com/sj9102001/workly/internal/config"
	"github.com/sj9102001/workly/internal/dispatch"
	"github.com/sj9102001/workly/internal/infra/messaging"
)

var emailWorkerCmd = &cobra.Command{
	Use:   "email-worker",
	Short: "Run the invite email consumer group",
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

		client, err := messaging.NewNATS(cmd.Context(), cfg.NATS)
		if err != nil {
			fmt.Fprintln(os.Stderr, "nats error:", err)
			os.Exit(1)
		}
		defer client.Close()

		dispatcher := dispatch.NewEmailDispatcher(log)
		sub, err := client.PullSubscribe(cfg.NATS.EmailDurable)
		if err != nil {
			fmt.Fprintln(os.Stderr, "subscribe error:", err)
			os.Exit(1)
		}
		log.Infof("email-worker: listening on %s (durable=%s)", cfg.NATS.OrgEventsSubject, cfg.NATS.EmailDurable)

		for {
			select {
			case <-cmd.Context().Done():
				return
			default:
			}

			msgs, err := sub.Fetch(50, nats.MaxWait(2*time.Second))
			if err != nil {
				if errors.Is(err, nats.ErrTimeout) {
					continue
				}
				log.WithError(err).Warn("email-worker: fetch failed")
				continue
			}
			for _, msg := range msgs {
				dispatcher.Dispatch(cmd.Context(), msg.Data)
				_ = msg.Ack()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(emailWorkerCmd)
}
