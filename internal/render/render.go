// Package render prints a decided response to the terminal and drives the
// per-field reveal interaction.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/opbop/opbop/internal/decide"
	"github.com/opbop/opbop/internal/model"
	"golang.org/x/net/html"
)

// Renderer writes the parse result to out. When plain is false, suppressed
// fields get an interactive reveal prompt read from in.
type Renderer struct {
	out   io.Writer
	in    *bufio.Reader
	plain bool
}

// New creates a renderer. in may be nil when plain is true.
func New(out io.Writer, in io.Reader, plain bool) *Renderer {
	var reader *bufio.Reader
	if in != nil {
		reader = bufio.NewReader(in)
	}
	return &Renderer{out: out, in: reader, plain: plain || reader == nil}
}

// Render prints both text fields, the reduction line, and the similar
// article tiles. Suppressed fields show their warning and, in interactive
// mode, offer a one-time reveal.
func (r *Renderer) Render(session *decide.Session, resp *model.ResponsePayload, images *decide.ImageSelector) error {
	if err := r.renderField(session, decide.FieldTLDR, "TL;DR"); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Article length reduced by %d%%\n\n", resp.Reduction)

	if err := r.renderField(session, decide.FieldSimplified, "Simplified"); err != nil {
		return err
	}

	if len(resp.Articles) > 0 {
		fmt.Fprintln(r.out, "== Similar articles ==")
		for _, article := range resp.Articles {
			fmt.Fprintf(r.out, "- %s (%s)\n  %s\n  image: %s\n",
				StripMarkup(article.Title), StripMarkup(article.Source), article.URL, images.Pick(article))
		}
	}
	return nil
}

func (r *Renderer) renderField(session *decide.Session, field decide.Field, heading string) error {
	decision := session.Decide(field)

	fmt.Fprintf(r.out, "== %s ==\n", heading)
	fmt.Fprintln(r.out, StripMarkup(decision.Text))

	if decision.Suppressed && !r.plain {
		fmt.Fprintf(r.out, "Reveal the hidden %s anyway? [y/N]: ", field)
		answer, err := r.in.ReadString('\n')
		if err != nil && answer == "" {
			fmt.Fprintln(r.out)
			return nil
		}
		if yes(answer) {
			session.Reveal(field)
			fmt.Fprintln(r.out, StripMarkup(session.Decide(field).Text))
		}
	}

	fmt.Fprintln(r.out)
	return nil
}

func yes(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// StripMarkup flattens innerHTML-style service text to plain terminal text.
// Non-markup input passes through unchanged.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			b.WriteString("\n")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return strings.TrimSpace(b.String())
}
