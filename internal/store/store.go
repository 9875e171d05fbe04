// Package store provides the per-invite key-value persistence used when no
// remote RSVP endpoint is configured.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// confirmedKeyPrefix namespaces per-invite confirmation maps.
const confirmedKeyPrefix = "rsvp-confirmed:"

// KV is a minimal persistent key-value store. Implementations must be safe
// for concurrent use.
type KV interface {
	// Get returns the stored value for key. The boolean reports presence;
	// a missing key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key, overwriting any previous entry.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// ConfirmedKey returns the storage key holding the confirmation map for an
// invite.
func ConfirmedKey(inviteID string) string {
	return confirmedKeyPrefix + inviteID
}

// Confirmations loads the persisted name-to-confirmed map for an invite.
// A missing entry yields an empty map.
func Confirmations(ctx context.Context, kv KV, inviteID string) (map[string]bool, error) {
	b, ok, err := kv.Get(ctx, ConfirmedKey(inviteID))
	if err != nil {
		return nil, fmt.Errorf("load confirmations: %w", err)
	}
	if !ok {
		return map[string]bool{}, nil
	}
	var m map[string]bool
	if err := json.Unmarshal(b, &m); err != nil {
		// A corrupt entry degrades to "no local state" rather than failing
		// the page.
		return map[string]bool{}, nil
	}
	if m == nil {
		m = map[string]bool{}
	}
	return m, nil
}

// SaveConfirmations overwrites the persisted confirmation map for an invite.
func SaveConfirmations(ctx context.Context, kv KV, inviteID string, m map[string]bool) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode confirmations: %w", err)
	}
	if err := kv.Set(ctx, ConfirmedKey(inviteID), b); err != nil {
		return fmt.Errorf("save confirmations: %w", err)
	}
	return nil
}
