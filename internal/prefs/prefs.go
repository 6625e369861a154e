package prefs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/opbop/opbop/internal/model"
)

// Manager exposes the preference set as a value object over a Store.
type Manager struct {
	store Store
}

// NewManager creates a preference manager backed by the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// EnsureDefaults writes the documented default for every canonical key that
// is truly absent from the store. Presence is tested by key membership, never
// truthiness, so a user-set false or 0 is left alone. It also folds the
// legacy enableExplicitFiltering key into filterLevel exactly once.
func (m *Manager) EnsureDefaults(ctx context.Context) error {
	keys := append([]string{}, model.PreferenceKeys...)
	keys = append(keys, model.LegacyKeyEnableExplicitFiltering)

	stored, err := m.store.Get(ctx, keys...)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	missing := map[string]json.RawMessage{}
	defaults := defaultRawValues()
	for _, key := range model.PreferenceKeys {
		if _, ok := stored[key]; !ok {
			missing[key] = defaults[key]
		}
	}

	// Legacy migration: enableExplicitFiltering true meant "filter", which
	// maps to the strictest level; false meant no filtering at all. A stored
	// filterLevel always wins.
	raw, legacyPresent := stored[model.LegacyKeyEnableExplicitFiltering]
	if legacyPresent {
		if _, hasLevel := stored[model.KeyFilterLevel]; !hasLevel {
			var enabled bool
			if err := json.Unmarshal(raw, &enabled); err == nil {
				level := model.FilterNone
				if enabled {
					level = model.FilterBlockUnsafe
				}
				missing[model.KeyFilterLevel] = mustRaw(level)
			}
		}
	}

	if len(missing) > 0 {
		if err := m.store.Set(ctx, missing); err != nil {
			return fmt.Errorf("write default prefs: %w", err)
		}
	}

	// Only drop the legacy key once its migrated value is safely persisted;
	// a failed write above keeps the user's old choice for the next run.
	if legacyPresent {
		if err := m.store.Delete(ctx, model.LegacyKeyEnableExplicitFiltering); err != nil {
			return fmt.Errorf("drop legacy key: %w", err)
		}
	}
	return nil
}

// Load reads the full preference set, applying defaults for absent keys.
func (m *Manager) Load(ctx context.Context) (model.Preferences, error) {
	p := model.DefaultPreferences()

	stored, err := m.store.Get(ctx, model.PreferenceKeys...)
	if err != nil {
		return p, fmt.Errorf("load prefs: %w", err)
	}

	decode := func(key string, dst interface{}) {
		raw, ok := stored[key]
		if !ok {
			return
		}
		// A malformed stored value falls back to the default rather than
		// failing the whole load.
		_ = json.Unmarshal(raw, dst)
	}

	decode(model.KeyBlackList, &p.BlackList)
	decode(model.KeyFilterLevel, &p.FilterLevel)
	decode(model.KeyEnableSimilarArticleFiltering, &p.EnableSimilarArticleFiltering)
	decode(model.KeyArticleRangeBefore, &p.ArticleRangeBefore)
	decode(model.KeyArticleRangeAfter, &p.ArticleRangeAfter)
	decode(model.KeyCensorImages, &p.CensorImages)
	decode(model.KeyDisableReliabilityWarning, &p.DisableReliabilityWarning)

	if p.BlackList == nil {
		p.BlackList = []string{}
	}
	return p, nil
}

// Save persists the full preference set.
func (m *Manager) Save(ctx context.Context, p model.Preferences) error {
	blackList := p.BlackList
	if blackList == nil {
		blackList = []string{}
	}

	values := map[string]json.RawMessage{
		model.KeyBlackList:                     mustRaw(blackList),
		model.KeyFilterLevel:                   mustRaw(p.FilterLevel),
		model.KeyEnableSimilarArticleFiltering: mustRaw(p.EnableSimilarArticleFiltering),
		model.KeyArticleRangeBefore:            mustRaw(p.ArticleRangeBefore),
		model.KeyArticleRangeAfter:             mustRaw(p.ArticleRangeAfter),
		model.KeyCensorImages:                  mustRaw(p.CensorImages),
		model.KeyDisableReliabilityWarning:     mustRaw(p.DisableReliabilityWarning),
	}
	if err := m.store.Set(ctx, values); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

// Reset overwrites every canonical key with its documented default.
func (m *Manager) Reset(ctx context.Context) error {
	return m.Save(ctx, model.DefaultPreferences())
}

func defaultRawValues() map[string]json.RawMessage {
	d := model.DefaultPreferences()
	return map[string]json.RawMessage{
		model.KeyBlackList:                     mustRaw(d.BlackList),
		model.KeyFilterLevel:                   mustRaw(d.FilterLevel),
		model.KeyEnableSimilarArticleFiltering: mustRaw(d.EnableSimilarArticleFiltering),
		model.KeyArticleRangeBefore:            mustRaw(d.ArticleRangeBefore),
		model.KeyArticleRangeAfter:             mustRaw(d.ArticleRangeAfter),
		model.KeyCensorImages:                  mustRaw(d.CensorImages),
		model.KeyDisableReliabilityWarning:     mustRaw(d.DisableReliabilityWarning),
	}
}

func mustRaw(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal preference value: %v", err))
	}
	return data
}
