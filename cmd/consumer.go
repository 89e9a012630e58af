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
	"github.com/sj9102001/workly/internal/infra/persistence"
)

var consumerCmd = &cobra.Command{
	Use:   "consumer",
	Short: "Run the notifications consumer group",
	Long: `Consumes org events from JetStream and materializes in-app
notifications. Messages are always acked: failures are either permanent
(malformed, unknown type) or recovered by handler-side dedup on the next
occurrence.`,
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

		db, err := bootstrap.OpenDB(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "db error:", err)
			os.Exit(1)
		}
		defer db.Close()

		userRepo := persistence.NewUserRepository(db)
		orgRepo := persistence.NewOrganizationRepository(db)
		projectRepo := persistence.NewProjectRepository(db)
		notifier := dispatch.NewNotifier(persistence.NewNotificationRepository(db), log)
		router, err := dispatch.NewRouter(db, log,
			dispatch.NewInviteHandler(userRepo, orgRepo, notifier),
			dispatch.NewCommentHandler(userRepo, projectRepo, notifier),
			dispatch.NewInviteAcceptedHandler(userRepo, orgRepo, notifier),
			dispatch.NewRoleChangedHandler(userRepo, orgRepo, notifier),
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, "dispatch error:", err)
			os.Exit(1)
		}

		sub, err := client.PullSubscribe(cfg.NATS.NotificationsDurable)
		if err != nil {
			fmt.Fprintln(os.Stderr, "subscribe error:", err)
			os.Exit(1)
		}
		log.Infof("consumer: listening on %s (durable=%s)", cfg.NATS.OrgEventsSubject, cfg.NATS.NotificationsDurable)

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
				log.WithError(err).Warn("consumer: fetch failed")
				continue
			}
			for _, msg := range msgs {
				router.Dispatch(cmd.Context(), msg.Data)
				_ = msg.Ack()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(consumerCmd)
}
