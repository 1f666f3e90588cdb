// Package htmlutils converts platform-formatted HTML fragments to plain
// text. YouTube returns comment bodies as display HTML (anchor tags, <br>
// line breaks, escaped entities); mention text must be plain before any
// keyword matching runs on it.
package htmlutils

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
)

// lineBreakTags start a new output line when encountered.
var lineBreakTags = map[string]bool{
	"br":  true,
	"p":   true,
	"div": true,
	"li":  true,
}

// skippedTags have their entire content dropped.
var skippedTags = map[string]bool{
	"script": true,
	"style":  true,
}

// CommentText strips markup from an HTML fragment and returns the readable
// text with entities decoded. Plain input passes through trimmed. The
// tokenizer is forgiving: malformed markup degrades to best-effort text,
// never an error.
func CommentText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return strings.TrimSpace(html.UnescapeString(fragment))
	}

	tz := xhtml.NewTokenizer(strings.NewReader(fragment))

	var b strings.Builder

	b.Grow(len(fragment))

	skipDepth := 0

	for {
		tokType := tz.Next()

		switch tokType {
		case xhtml.ErrorToken:
			return collapseBlankLines(b.String())
		case xhtml.TextToken:
			if skipDepth == 0 {
				b.Write(tz.Text())
			}
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := tz.TagName()
			tag := string(name)

			if skippedTags[tag] {
				if tokType == xhtml.StartTagToken {
					skipDepth++
				}

				continue
			}

			if skipDepth == 0 && lineBreakTags[tag] {
				b.WriteByte('\n')
			}
		case xhtml.EndTagToken:
			name, _ := tz.TagName()
			tag := string(name)

			if skippedTags[tag] {
				if skipDepth > 0 {
					skipDepth--
				}

				continue
			}

			if skipDepth == 0 && lineBreakTags[tag] && tag != "br" {
				b.WriteByte('\n')
			}
		}
	}
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")

	out := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
