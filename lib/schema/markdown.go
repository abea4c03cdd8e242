// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdownRenderer is built once; goldmark.Markdown is safe for
// concurrent Convert calls.
var markdownRenderer = sync.OnceValue(func() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
	)
})

// NewMarkdownMessage creates a text message from Markdown source. The
// source becomes the plain body and its HTML rendering the
// formatted_body. When the rendering is just the source wrapped in a
// paragraph, the formatted body is omitted since it adds nothing.
// Raw HTML in the source is omitted from the formatted body.
func NewMarkdownMessage(source string) (MessageContent, error) {
	var rendered bytes.Buffer
	if err := markdownRenderer().Convert([]byte(source), &rendered); err != nil {
		return MessageContent{}, fmt.Errorf("rendering markdown: %w", err)
	}
	message := NewTextMessage(source)
	html := strings.TrimSpace(rendered.String())
	if html == "<p>"+source+"</p>" || html == "" {
		return message, nil
	}
	message.Format = FormatHTML
	message.FormattedBody = html
	return message, nil
}
