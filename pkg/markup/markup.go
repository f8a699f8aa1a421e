// Package markup renders Markdown bodies to sanitised HTML and strips markup
// from plain-text input such as comments.
package markup

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md         goldmark.Markdown
	ugcPolicy  *bluemonday.Policy
	textPolicy *bluemonday.Policy
	initOnce   sync.Once
)

func initRenderers() {
	initOnce.Do(func() {
		md = goldmark.New(goldmark.WithExtensions(extension.GFM))

		ugcPolicy = bluemonday.UGCPolicy()
		ugcPolicy.RequireNoFollowOnLinks(true)
		ugcPolicy.AddTargetBlankToFullyQualifiedLinks(true)

		textPolicy = bluemonday.StrictPolicy()
	})
}

// Render converts Markdown to HTML and sanitises the result. Raw HTML in the
// source is dropped by goldmark; the policy removes whatever is left unsafe.
func Render(source string) (string, error) {
	initRenderers()
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return ugcPolicy.Sanitize(buf.String()), nil
}

// PlainText removes every tag from s and trims surrounding space.
func PlainText(s string) string {
	initRenderers()
	return strings.TrimSpace(textPolicy.Sanitize(s))
}
