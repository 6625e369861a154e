package decide

import (
	"strings"
	"testing"

	"github.com/opbop/opbop/internal/model"
)

func TestSession_CleanResponseShowsRawText(t *testing.T) {
	resp := &model.ResponsePayload{
		TLDR:        "the summary",
		Simplified:  "the simple version",
		Censored:    false,
		Reliability: model.ReliabilityHigh,
	}
	session := NewSession(resp, model.Preferences{})

	for field, want := range map[Field]string{
		FieldTLDR:       "the summary",
		FieldSimplified: "the simple version",
	} {
		decision := session.Decide(field)
		if decision.Suppressed {
			t.Errorf("%s: no reveal control should be offered for clean content", field)
		}
		if decision.Text != want {
			t.Errorf("%s: Text = %q, want raw %q", field, decision.Text, want)
		}
	}
}

func TestSession_CensoredUnsafeShowsOnlyCensorshipClause(t *testing.T) {
	resp := &model.ResponsePayload{
		TLDR:        "raw text",
		Censored:    true,
		Sensitivity: model.SensitivityUnsafe,
		Reliability: model.ReliabilityHigh,
	}
	session := NewSession(resp, model.Preferences{DisableReliabilityWarning: false})

	decision := session.Decide(FieldTLDR)
	if !decision.Suppressed {
		t.Fatal("censored content must be suppressed")
	}
	if !strings.Contains(decision.Text, "profane, prejudiced, or hateful") {
		t.Errorf("expected the unsafe-language notice, got %q", decision.Text)
	}
	if strings.Contains(decision.Text, "reliability") {
		t.Errorf("high reliability must not add a clause, got %q", decision.Text)
	}
	if strings.Contains(decision.Text, "raw text") {
		t.Error("raw text must never leak into the warning")
	}
}

func TestSession_CensoredSensitiveShowsSensitiveClause(t *testing.T) {
	resp := &model.ResponsePayload{
		Censored:    true,
		Sensitivity: model.SensitivitySensitive,
	}
	session := NewSession(resp, model.Preferences{})

	decision := session.Decide(FieldTLDR)
	if !strings.Contains(decision.Text, "political, religious, or concerning a protected class") {
		t.Errorf("expected the sensitive-content notice, got %q", decision.Text)
	}
}

func TestSession_UnreliableSourceShowsOnlyReliabilityClause(t *testing.T) {
	resp := &model.ResponsePayload{
		TLDR:        "raw text",
		Censored:    false,
		Reliability: model.ReliabilityLow,
	}
	session := NewSession(resp, model.Preferences{DisableReliabilityWarning: false})

	decision := session.Decide(FieldTLDR)
	if !decision.Suppressed {
		t.Fatal("low reliability must suppress and offer reveal")
	}
	want := "This source is known to have low reliability; take its reporting with a grain of salt."
	if decision.Text != want {
		t.Errorf("Text = %q, want exactly the reliability clause %q", decision.Text, want)
	}
}

func TestSession_DisabledReliabilityWarningShowsRawText(t *testing.T) {
	resp := &model.ResponsePayload{
		TLDR:        "raw text",
		Censored:    false,
		Reliability: model.ReliabilityLow,
	}
	session := NewSession(resp, model.Preferences{DisableReliabilityWarning: true})

	decision := session.Decide(FieldTLDR)
	if decision.Suppressed {
		t.Error("warning disabled: no reveal control should be offered")
	}
	if decision.Text != "raw text" {
		t.Errorf("Text = %q, want raw text unchanged", decision.Text)
	}
}

func TestComposeWarning_BothClausesInOrderWithBlankLine(t *testing.T) {
	resp := &model.ResponsePayload{
		Censored:    true,
		Sensitivity: model.SensitivityUnsafe,
		Reliability: model.ReliabilityMixed,
	}

	warning := ComposeWarning(resp, model.Preferences{})

	parts := strings.Split(warning, "\n\n")
	if len(parts) != 2 {
		t.Fatalf("expected two clauses separated by a blank line, got %q", warning)
	}
	if !strings.Contains(parts[0], "profane") {
		t.Errorf("censorship clause must come first, got %q", parts[0])
	}
	if !strings.Contains(parts[1], "mixed reliability") {
		t.Errorf("reliability clause must come second and name the rating, got %q", parts[1])
	}
}

func TestComposeWarning_UnknownSensitivityAddsNoClause(t *testing.T) {
	tests := []struct {
		sensitivity string
		desc        string
	}{
		{sensitivity: "", desc: "missing"},
		{sensitivity: "0", desc: "safe tier"},
		{sensitivity: "3", desc: "out of range"},
		{sensitivity: "banana", desc: "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			resp := &model.ResponsePayload{
				Censored:    true,
				Sensitivity: tt.sensitivity,
				Reliability: model.ReliabilityHigh,
			}
			if got := ComposeWarning(resp, model.Preferences{}); got != "" {
				t.Errorf("ComposeWarning = %q, want no clause for sensitivity %q", got, tt.sensitivity)
			}
		})
	}
}

func TestShouldSuppress_UnknownReliabilityDoesNotWarn(t *testing.T) {
	resp := &model.ResponsePayload{Censored: false, Reliability: "dubious"}
	if ShouldSuppress(resp, model.Preferences{}) {
		t.Error("only mixed/low reliability may trigger suppression")
	}
}

func TestSession_RevealIsPerFieldAndTerminal(t *testing.T) {
	resp := &model.ResponsePayload{
		TLDR:        "raw tldr",
		Simplified:  "raw simplified",
		Censored:    true,
		Sensitivity: model.SensitivityUnsafe,
	}
	session := NewSession(resp, model.Preferences{})

	session.Reveal(FieldTLDR)

	tldr := session.Decide(FieldTLDR)
	if tldr.Suppressed || tldr.Text != "raw tldr" {
		t.Errorf("revealed field: got %+v, want raw text with no control", tldr)
	}

	// Repeat decisions stay revealed for the rest of the session.
	again := session.Decide(FieldTLDR)
	if again.Suppressed || again.Text != "raw tldr" {
		t.Errorf("reveal must be terminal for the session, got %+v", again)
	}

	// The other field is untouched.
	simplified := session.Decide(FieldSimplified)
	if !simplified.Suppressed {
		t.Error("revealing one field must not reveal the other")
	}
}

func TestSession_FreshSessionSuppressesAgain(t *testing.T) {
	resp := &model.ResponsePayload{
		TLDR:     "raw",
		Censored: true,
	}

	first := NewSession(resp, model.Preferences{})
	first.Reveal(FieldTLDR)

	second := NewSession(resp, model.Preferences{})
	if !second.Decide(FieldTLDR).Suppressed {
		t.Error("reveal state must not survive into a new session")
	}
}
