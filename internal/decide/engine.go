// Package decide turns a service response and the current preferences into
// what the user actually sees: suppressed warning text with a reveal path,
// or the raw fields directly.
package decide

import (
	"fmt"
	"strings"

	"github.com/opbop/opbop/internal/model"
)

// Field names a displayable text field of the response.
type Field string

// The two displayable text fields.
const (
	FieldTLDR       Field = "tldr"
	FieldSimplified Field = "simplified"
)

// Warning copy. The reliability sentence names the rating verbatim.
const (
	sensitiveNotice = "This article has been hidden because it may discuss something political, religious, or concerning a protected class."
	unsafeNotice    = "This article has been hidden because it may contain profane, prejudiced, or hateful language."

	reliabilityNoticeFormat = "This source is known to have %s reliability; take its reporting with a grain of salt."
)

// Decision is what to display for one field right now.
type Decision struct {
	Text string
	// Suppressed reports that the raw text is withheld and a reveal
	// control should be offered.
	Suppressed bool
}

// Session holds the per-rendering-session reveal state for one response.
// Each field starts Suppressed when the suppression criteria hold and moves
// to Revealed only by an explicit Reveal call; that transition is terminal
// for the session and is never persisted.
type Session struct {
	resp     *model.ResponsePayload
	prefs    model.Preferences
	revealed map[Field]bool
}

// NewSession starts a rendering session for a response against the
// preference snapshot taken at response arrival.
func NewSession(resp *model.ResponsePayload, prefs model.Preferences) *Session {
	return &Session{
		resp:     resp,
		prefs:    prefs,
		revealed: make(map[Field]bool),
	}
}

// Decide returns the current display decision for a field.
func (s *Session) Decide(field Field) Decision {
	raw := s.raw(field)
	if !ShouldSuppress(s.resp, s.prefs) || s.revealed[field] {
		return Decision{Text: raw}
	}
	return Decision{Text: ComposeWarning(s.resp, s.prefs), Suppressed: true}
}

// Reveal forces display of the raw value for one field for the remainder of
// the session.
func (s *Session) Reveal(field Field) {
	s.revealed[field] = true
}

func (s *Session) raw(field Field) string {
	switch field {
	case FieldSimplified:
		return s.resp.Simplified
	default:
		return s.resp.TLDR
	}
}

// ShouldSuppress reports whether the raw text must be withheld: the service
// censored it, or the source reliability warrants a warning the user has
// not turned off.
func ShouldSuppress(resp *model.ResponsePayload, prefs model.Preferences) bool {
	return resp.Censored || reliabilityWarns(resp, prefs)
}

// ComposeWarning builds the suppression message: the censorship clause for
// the response's sensitivity tier, then the reliability clause, separated by
// a blank line when both apply. Sensitivity values outside the known set add
// no censorship clause.
func ComposeWarning(resp *model.ResponsePayload, prefs model.Preferences) string {
	var clauses []string

	if resp.Censored {
		switch resp.Sensitivity {
		case model.SensitivitySensitive:
			clauses = append(clauses, sensitiveNotice)
		case model.SensitivityUnsafe:
			clauses = append(clauses, unsafeNotice)
		}
	}

	if reliabilityWarns(resp, prefs) {
		clauses = append(clauses, fmt.Sprintf(reliabilityNoticeFormat, resp.Reliability))
	}

	return strings.Join(clauses, "\n\n")
}

// reliabilityWarns holds only for the known warning-worthy ratings; any
// other value never triggers the clause.
func reliabilityWarns(resp *model.ResponsePayload, prefs model.Preferences) bool {
	if prefs.DisableReliabilityWarning {
		return false
	}
	return resp.Reliability == model.ReliabilityMixed || resp.Reliability == model.ReliabilityLow
}
