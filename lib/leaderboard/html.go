// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package leaderboard

import (
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownInstance
}

// RenderHTML renders the people and things boards as an HTML fragment
// for the service status page. Section headings carry the same labels
// as the chat reply; the pipe tables become HTML tables through the
// GFM table extension.
func RenderHTML(people, things []Row) (string, error) {
	var markdown strings.Builder
	markdown.WriteString("## User leaderboard\n\n")
	markdown.WriteString(RenderTable(people))
	markdown.WriteString("\n\n## Thing leaderboard\n\n")
	markdown.WriteString(RenderTable(things))
	markdown.WriteString("\n")

	var html strings.Builder
	if err := getMarkdown().Convert([]byte(markdown.String()), &html); err != nil {
		return "", fmt.Errorf("rendering leaderboard markdown: %w", err)
	}
	return html.String(), nil
}
