package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/opbop/opbop/internal/model"
)

// Blacklist mutation errors.
var (
	// ErrInvalidFormat means the candidate does not look like a domain.
	ErrInvalidFormat = errors.New("not a valid domain (formatting: \"opbop.com\")")
	// ErrDuplicate means the domain is already blacklisted. Callers may
	// treat this as a no-op.
	ErrDuplicate = errors.New("domain already blacklisted")
	// ErrOutOfRange means the deletion position does not exist in the
	// current list; the caller should re-render and retry.
	ErrOutOfRange = errors.New("blacklist position out of range")
)

// domainPattern is a deliberately permissive approximation of a hostname:
// an alphanumeric label, a dot, and a 2-3 letter top-level segment. Schemes
// and paths never match.
var domainPattern = regexp.MustCompile(`(?i)^[a-z0-9]*\.[a-z]{2,3}$`)

// BlacklistManager validates and mutates the persisted domain blacklist.
// Every mutation is a read-modify-write against the live store so stale
// snapshots are never written back.
type BlacklistManager struct {
	store Store
}

// NewBlacklistManager creates a blacklist manager over the given store.
func NewBlacklistManager(store Store) *BlacklistManager {
	return &BlacklistManager{store: store}
}

// Validate reports whether the candidate matches the accepted domain shape.
func (b *BlacklistManager) Validate(candidate string) bool {
	return domainPattern.MatchString(candidate)
}

// Add lower-cases and validates the candidate, then appends it to the
// persisted list. Returns ErrInvalidFormat or ErrDuplicate without touching
// storage.
func (b *BlacklistManager) Add(ctx context.Context, candidate string) error {
	domain := strings.ToLower(strings.TrimSpace(candidate))
	if !b.Validate(domain) {
		return ErrInvalidFormat
	}

	current, err := b.fetch(ctx)
	if err != nil {
		return err
	}
	for _, existing := range current {
		if existing == domain {
			return ErrDuplicate
		}
	}

	return b.persist(ctx, append(current, domain))
}

// Remove deletes exactly one entry at the given position of the current
// persisted list. The list is re-fetched first so the position is applied
// to the latest snapshot.
func (b *BlacklistManager) Remove(ctx context.Context, position int) error {
	current, err := b.fetch(ctx)
	if err != nil {
		return err
	}
	if position < 0 || position >= len(current) {
		return ErrOutOfRange
	}

	updated := append(current[:position], current[position+1:]...)
	return b.persist(ctx, updated)
}

// List returns the current blacklist with positions assigned in storage
// order. Positions are deletion handles for this snapshot only.
func (b *BlacklistManager) List(ctx context.Context) ([]model.BlacklistEntry, error) {
	current, err := b.fetch(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.BlacklistEntry, len(current))
	for i, domain := range current {
		entries[i] = model.BlacklistEntry{Domain: domain, Position: i}
	}
	return entries, nil
}

func (b *BlacklistManager) fetch(ctx context.Context) ([]string, error) {
	stored, err := b.store.Get(ctx, model.KeyBlackList)
	if err != nil {
		return nil, fmt.Errorf("load blacklist: %w", err)
	}

	list := []string{}
	if raw, ok := stored[model.KeyBlackList]; ok {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("parse blacklist: %w", err)
		}
	}
	return list, nil
}

func (b *BlacklistManager) persist(ctx context.Context, list []string) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal blacklist: %w", err)
	}
	if err := b.store.Set(ctx, map[string]json.RawMessage{model.KeyBlackList: raw}); err != nil {
		return fmt.Errorf("save blacklist: %w", err)
	}
	return nil
}
