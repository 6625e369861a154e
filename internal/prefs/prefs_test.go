package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/opbop/opbop/internal/model"
)

// fakeStore is an in-memory Store for exercising preference logic without
// touching disk.
type fakeStore struct {
	values   map[string]json.RawMessage
	failSet  bool
	setCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]json.RawMessage{}}
}

func (f *fakeStore) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	result := map[string]json.RawMessage{}
	for _, key := range keys {
		if val, ok := f.values[key]; ok {
			result[key] = val
		}
	}
	return result, nil
}

func (f *fakeStore) Set(ctx context.Context, values map[string]json.RawMessage) error {
	f.setCalls++
	if f.failSet {
		return errors.New("store unavailable")
	}
	for key, val := range values {
		f.values[key] = val
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func TestEnsureDefaults_FirstRun(t *testing.T) {
	store := newFakeStore()
	manager := NewManager(store)

	if err := manager.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range model.PreferenceKeys {
		if _, ok := store.values[key]; !ok {
			t.Errorf("expected default written for %s", key)
		}
	}
	if string(store.values[model.KeyFilterLevel]) != "0" {
		t.Errorf("filterLevel default = %s, want 0", store.values[model.KeyFilterLevel])
	}
	if string(store.values[model.KeyBlackList]) != "[]" {
		t.Errorf("blackList default = %s, want []", store.values[model.KeyBlackList])
	}
}

func TestEnsureDefaults_DoesNotOverwriteFalsyValues(t *testing.T) {
	store := newFakeStore()
	// User explicitly chose level 2 and turned censorImages off. A presence
	// check based on truthiness would clobber these.
	store.values[model.KeyFilterLevel] = json.RawMessage(`2`)
	store.values[model.KeyCensorImages] = json.RawMessage(`false`)

	manager := NewManager(store)
	if err := manager.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(store.values[model.KeyFilterLevel]) != "2" {
		t.Errorf("filterLevel = %s, want 2 preserved", store.values[model.KeyFilterLevel])
	}
	if string(store.values[model.KeyCensorImages]) != "false" {
		t.Errorf("censorImages = %s, want false preserved", store.values[model.KeyCensorImages])
	}
}

func TestEnsureDefaults_Idempotent(t *testing.T) {
	store := newFakeStore()
	manager := NewManager(store)
	ctx := context.Background()

	if err := manager.EnsureDefaults(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	before := store.setCalls

	if err := manager.EnsureDefaults(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if store.setCalls != before {
		t.Error("second run should not write anything")
	}
}

func TestEnsureDefaults_LegacyExplicitFilteringMigration(t *testing.T) {
	tests := []struct {
		name      string
		legacy    string
		wantLevel string
	}{
		{name: "enabled maps to strictest level", legacy: `true`, wantLevel: `0`},
		{name: "disabled maps to no filtering", legacy: `false`, wantLevel: `2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.values[model.LegacyKeyEnableExplicitFiltering] = json.RawMessage(tt.legacy)

			manager := NewManager(store)
			if err := manager.EnsureDefaults(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := string(store.values[model.KeyFilterLevel]); got != tt.wantLevel {
				t.Errorf("filterLevel = %s, want %s", got, tt.wantLevel)
			}
			if _, ok := store.values[model.LegacyKeyEnableExplicitFiltering]; ok {
				t.Error("legacy key should be removed after migration")
			}
		})
	}
}

func TestEnsureDefaults_LegacyKeySurvivesFailedWrite(t *testing.T) {
	store := newFakeStore()
	store.values[model.LegacyKeyEnableExplicitFiltering] = json.RawMessage(`true`)
	store.failSet = true

	manager := NewManager(store)
	if err := manager.EnsureDefaults(context.Background()); err == nil {
		t.Fatal("expected the store failure to surface")
	}

	// The user's old choice must stay put until the migrated value has been
	// written, so the next run can retry the migration.
	if _, ok := store.values[model.LegacyKeyEnableExplicitFiltering]; !ok {
		t.Error("legacy key dropped before the migrated value was persisted")
	}
}

func TestEnsureDefaults_StoredFilterLevelBeatsLegacyKey(t *testing.T) {
	store := newFakeStore()
	store.values[model.KeyFilterLevel] = json.RawMessage(`1`)
	store.values[model.LegacyKeyEnableExplicitFiltering] = json.RawMessage(`false`)

	manager := NewManager(store)
	if err := manager.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := string(store.values[model.KeyFilterLevel]); got != "1" {
		t.Errorf("filterLevel = %s, want stored 1 preserved", got)
	}
}

func TestLoad_AppliesDefaultsForAbsentKeys(t *testing.T) {
	store := newFakeStore()
	store.values[model.KeyFilterLevel] = json.RawMessage(`1`)

	manager := NewManager(store)
	p, err := manager.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.FilterLevel != 1 {
		t.Errorf("FilterLevel = %d, want 1", p.FilterLevel)
	}
	if p.EnableSimilarArticleFiltering {
		t.Error("EnableSimilarArticleFiltering should default to false")
	}
	if p.BlackList == nil || len(p.BlackList) != 0 {
		t.Errorf("BlackList should default to an empty list, got %v", p.BlackList)
	}
}

func TestLoad_MalformedValueFallsBackToDefault(t *testing.T) {
	store := newFakeStore()
	store.values[model.KeyFilterLevel] = json.RawMessage(`"not-a-number"`)

	manager := NewManager(store)
	p, err := manager.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FilterLevel != model.FilterBlockUnsafe {
		t.Errorf("FilterLevel = %d, want conservative default 0", p.FilterLevel)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := newFakeStore()
	manager := NewManager(store)
	ctx := context.Background()

	want := model.Preferences{
		BlackList:                     []string{"opbop.com"},
		FilterLevel:                   model.FilterNone,
		EnableSimilarArticleFiltering: true,
		ArticleRangeBefore:            "2024-01-01",
		ArticleRangeAfter:             "2023-01-01",
		CensorImages:                  true,
		DisableReliabilityWarning:     true,
	}
	if err := manager.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := manager.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.FilterLevel != want.FilterLevel ||
		got.EnableSimilarArticleFiltering != want.EnableSimilarArticleFiltering ||
		got.ArticleRangeBefore != want.ArticleRangeBefore ||
		got.ArticleRangeAfter != want.ArticleRangeAfter ||
		got.CensorImages != want.CensorImages ||
		got.DisableReliabilityWarning != want.DisableReliabilityWarning {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if len(got.BlackList) != 1 || got.BlackList[0] != "opbop.com" {
		t.Errorf("BlackList = %v, want [opbop.com]", got.BlackList)
	}
}
