package model

// Preference keys as persisted in the store. These are the canonical names;
// earlier releases also wrote enableExplicitFiltering and the
// similarArticleRange* variants, which are migrated or ignored on load.
const (
	KeyBlackList                     = "blackList"
	KeyFilterLevel                   = "filterLevel"
	KeyEnableSimilarArticleFiltering = "enableSimilarArticleFiltering"
	KeyArticleRangeBefore            = "articleRangeBefore"
	KeyArticleRangeAfter             = "articleRangeAfter"
	KeyCensorImages                  = "censorImages"
	KeyDisableReliabilityWarning     = "disableReliabilityWarning"

	// LegacyKeyEnableExplicitFiltering predates filterLevel and is folded
	// into it once by EnsureDefaults.
	LegacyKeyEnableExplicitFiltering = "enableExplicitFiltering"
)

// PreferenceKeys lists every canonical key, in the order prefs show prints them.
var PreferenceKeys = []string{
	KeyBlackList,
	KeyFilterLevel,
	KeyEnableSimilarArticleFiltering,
	KeyArticleRangeBefore,
	KeyArticleRangeAfter,
	KeyCensorImages,
	KeyDisableReliabilityWarning,
}

// Filter levels for explicit-content filtering.
const (
	FilterBlockUnsafe    = 0 // block unsafe text only
	FilterBlockSensitive = 1 // block sensitive text and above
	FilterNone           = 2 // let everything through
)

// Preferences is the user preference set governing request assembly and
// response display. Values come from the store with defaults applied for
// absent keys.
type Preferences struct {
	BlackList                     []string `json:"blackList"`
	FilterLevel                   int      `json:"filterLevel"`
	EnableSimilarArticleFiltering bool     `json:"enableSimilarArticleFiltering"`
	ArticleRangeBefore            string   `json:"articleRangeBefore"`
	ArticleRangeAfter             string   `json:"articleRangeAfter"`
	CensorImages                  bool     `json:"censorImages"`
	DisableReliabilityWarning     bool     `json:"disableReliabilityWarning"`
}

// DefaultPreferences returns the documented defaults written on first run.
func DefaultPreferences() Preferences {
	return Preferences{
		BlackList:                     []string{},
		FilterLevel:                   FilterBlockUnsafe,
		EnableSimilarArticleFiltering: false,
		ArticleRangeBefore:            "",
		ArticleRangeAfter:             "",
		CensorImages:                  false,
		DisableReliabilityWarning:     false,
	}
}

// BlacklistEntry pairs a blocked domain with its position in the current
// list snapshot. Positions double as deletion handles and are only valid
// until the next mutation.
type BlacklistEntry struct {
	Domain   string `json:"domain"`
	Position int    `json:"position"`
}

// FilterLevelDescription returns the user-facing description of a filter
// level, matching the options page copy.
func FilterLevelDescription(level int) string {
	switch level {
	case FilterBlockUnsafe:
		return "Block unsafe text (profane language, prejudiced or hateful language, something that could be NSFW)"
	case FilterBlockSensitive:
		return "Block sensitive text and above (could be talking about something political, religious, or talking about a protected class)"
	default:
		return "Let all content through, and parse (summarize and simplify) accordingly."
	}
}
