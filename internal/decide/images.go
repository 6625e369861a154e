package decide

import (
	"math/rand"
	"time"

	"github.com/opbop/opbop/internal/model"
)

// placeholders is the fixed set of stand-in thumbnails used when article
// images are censored.
var placeholders = []string{
	"images/censored-1.png",
	"images/censored-2.png",
	"images/censored-3.png",
	"images/censored-4.png",
}

// ImageSelector decides, per article thumbnail, whether to show the real
// image or a placeholder. A placeholder is substituted only when the user
// asked for image censorship and the response was censored. Each pick is
// independent; nothing is memoized across re-renders.
type ImageSelector struct {
	substitute bool
	rng        *rand.Rand
}

// NewImageSelector creates a selector for one response.
func NewImageSelector(prefs model.Preferences, resp *model.ResponsePayload) *ImageSelector {
	return newImageSelector(prefs.CensorImages && resp.Censored, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newImageSelector(substitute bool, rng *rand.Rand) *ImageSelector {
	return &ImageSelector{substitute: substitute, rng: rng}
}

// Pick returns the image URL to display for one article.
func (s *ImageSelector) Pick(article model.Article) string {
	if !s.substitute {
		return article.Image
	}
	return placeholders[s.rng.Intn(len(placeholders))]
}
