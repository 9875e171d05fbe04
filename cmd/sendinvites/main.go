// Command sendinvites emails every guest in the bundled dataset their
// personalized invite link. Guests are deduplicated by email per invite, and
// DRY_RUN=1 prints what would be sent without calling the mail API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"mikadarshika.com/wedding-web/internal/config"
	"mikadarshika.com/wedding-web/internal/invite"
	"mikadarshika.com/wedding-web/internal/mailer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	appCfg, err := config.Load()
	if err != nil {
		return err
	}
	var mailCfg mailer.Config
	if err := env.Parse(&mailCfg); err != nil {
		return err
	}

	var only string
	flag.StringVar(&only, "invite", "", "send to a single invite id")
	flag.BoolVar(&mailCfg.DryRun, "dry-run", mailCfg.DryRun, "print instead of sending")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	if !mailCfg.DryRun {
		if err := mailCfg.Validate(); err != nil {
			return err
		}
	}

	ds, err := invite.LoadDataset(filepath.Join(appCfg.DataDir, "invites.json"))
	if err != nil {
		return err
	}

	client := mailer.NewClient(mailCfg)
	ctx := context.Background()

	var sent, skipped, failed int
	seen := map[string]struct{}{}
	for _, id := range ds.IDs() {
		if only != "" && id != only {
			continue
		}
		inv, _ := ds.Lookup(id)
		for _, p := range inv.People {
			if p.Email == "" {
				skipped++
				continue
			}
			key := strings.ToLower(p.Email) + "|" + id
			if _, dup := seen[key]; dup {
				skipped++
				continue
			}
			seen[key] = struct{}{}

			msg := mailer.Invitation{
				InviteID: id,
				Title:    inv.Title,
				Name:     p.Name,
				Email:    p.Email,
			}
			if mailCfg.DryRun {
				logger.Info("dry run",
					zap.String("to", p.Email),
					zap.String("invite_id", id),
					zap.String("link", client.InviteLink(id)),
				)
				sent++
				continue
			}
			if err := client.Send(ctx, msg); err != nil {
				failed++
				logger.Error("send failed",
					zap.String("to", p.Email),
					zap.String("invite_id", id),
					zap.Error(err),
				)
				continue
			}
			sent++
			logger.Info("sent", zap.String("to", p.Email), zap.String("invite_id", id))
			// light pacing to stay under the API rate limit
			time.Sleep(200 * time.Millisecond)
		}
	}

	logger.Info("done", zap.Int("sent", sent), zap.Int("skipped", skipped), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d invite emails failed", failed)
	}
	return nil
}
