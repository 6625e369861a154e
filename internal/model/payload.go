package model

// ArticleRange bounds the similar-article search by publication date.
// Field naming is asymmetric on purpose: from carries the "after" date and
// to carries the "before" date. The service contract depends on it.
type ArticleRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RequestPayload is the body POSTed to the summarization service.
// Constructed fresh per request, never persisted.
type RequestPayload struct {
	URL            string        `json:"url"`
	ArticleRange   *ArticleRange `json:"articleRange"`
	FilterExplicit string        `json:"filterExplicit"`
	Blacklist      []string      `json:"blacklist"`
}

// Sensitivity tiers assigned by the service.
const (
	SensitivitySafe      = "0"
	SensitivitySensitive = "1"
	SensitivityUnsafe    = "2"
)

// Reliability ratings assigned by the service. Values outside this set may
// appear and must not trigger a warning.
const (
	ReliabilityHigh  = "high"
	ReliabilityMixed = "mixed"
	ReliabilityLow   = "low"
)

// ResponsePayload is the service's answer for one article. Missing fields
// decode to zero values and degrade to "no warning" downstream.
type ResponsePayload struct {
	TLDR        string    `json:"tldr"`
	Simplified  string    `json:"simplified"`
	Reduction   int       `json:"reduction"`
	Articles    []Article `json:"articles"`
	Sensitivity string    `json:"sensitivity"`
	Censored    bool      `json:"censored"`
	Reliability string    `json:"reliability"`
}

// Article is one similar-article suggestion.
type Article struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Source string `json:"source"`
	Image  string `json:"image"`
}
