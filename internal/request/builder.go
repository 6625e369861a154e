// Package request assembles the outbound payload for the summarization
// service from the current preferences and a target URL.
package request

import (
	"strconv"

	"github.com/opbop/opbop/internal/model"
)

// Build creates the request payload for one parse. Pure function of its
// inputs; the caller supplies the preference snapshot.
//
// The article range is only sent when similar-article filtering is enabled,
// and maps "after" to from and "before" to to, as the service expects.
func Build(targetURL string, p model.Preferences) model.RequestPayload {
	var articleRange *model.ArticleRange
	if p.EnableSimilarArticleFiltering {
		articleRange = &model.ArticleRange{
			From: p.ArticleRangeAfter,
			To:   p.ArticleRangeBefore,
		}
	}

	blacklist := p.BlackList
	if blacklist == nil {
		blacklist = []string{}
	}

	return model.RequestPayload{
		URL:            targetURL,
		ArticleRange:   articleRange,
		FilterExplicit: filterExplicit(p.FilterLevel),
		Blacklist:      blacklist,
	}
}

// filterExplicit stringifies the filter level, mapping anything outside the
// known set to the most conservative level.
func filterExplicit(level int) string {
	switch level {
	case model.FilterBlockUnsafe, model.FilterBlockSensitive, model.FilterNone:
		return strconv.Itoa(level)
	default:
		return "0"
	}
}
