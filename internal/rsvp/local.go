package rsvp

import (
	"context"

	"go.uber.org/zap"

	"mikadarshika.com/wedding-web/internal/store"
)

// LocalPersister writes confirmations to the per-invite store. It is the
// persistence path when no remote endpoint is configured.
//
// Storage failures are logged and swallowed: by the time the write happens
// the confirmation already succeeded logically, only durability degrades.
// Persist therefore never fails the user-visible flow.
type LocalPersister struct {
	KV     store.KV
	Logger *zap.Logger
}

// Persist implements Persister.
func (l LocalPersister) Persist(ctx context.Context, sub Submission) error {
	m := make(map[string]bool, len(sub.People))
	for _, ch := range sub.People {
		m[ch.Name] = ch.Attending
	}
	if err := store.SaveConfirmations(ctx, l.KV, sub.InviteID, m); err != nil {
		logger := l.Logger
		if logger == nil {
			logger = zap.NewNop()
		}
		logger.Warn("local confirmation write failed",
			zap.String("invite_id", sub.InviteID), zap.Error(err))
	}
	return nil
}
