// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pagerender

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// pagePolicy extends the user-generated-content policy with the media
// elements project pages embed.
func pagePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowNoAttrs().OnElements("video", "iframe")
	policy.AllowElements("source")
	policy.AllowAttrs("src").OnElements("video", "source", "iframe")
	policy.AllowAttrs("poster").OnElements("video")
	policy.AllowAttrs("title").OnElements("iframe")
	return policy
}

// prepare sanitizes page and rewrites its media so the markdown stage
// only sees elements it can express.
func (r *Renderer) prepare(page string) (string, error) {
	sanitized := r.policy.Sanitize(page)

	document, err := goquery.NewDocumentFromReader(strings.NewReader(sanitized))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}

	document.Find("img").Each(func(_ int, image *goquery.Selection) {
		if source, ok := image.Attr("src"); ok {
			image.SetAttr("src", r.resolve(source))
		}
	})

	document.Find("video").Each(func(_ int, video *goquery.Selection) {
		source, _ := video.Attr("src")
		if source == "" {
			source, _ = video.Find("source").First().Attr("src")
		}
		video.ReplaceWithHtml(mediaLink("Video", r.resolve(source)))
	})

	document.Find("iframe").Each(func(_ int, frame *goquery.Selection) {
		source, _ := frame.Attr("src")
		label, _ := frame.Attr("title")
		if label == "" {
			label = "Embedded video"
		}
		frame.ReplaceWithHtml(mediaLink(label, source))
	})

	body, err := document.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing page: %w", err)
	}
	return body, nil
}

func mediaLink(label, target string) string {
	if target == "" {
		return "<p>" + html.EscapeString("▶ "+label) + "</p>"
	}
	return fmt.Sprintf(`<p><a href="%s">%s</a></p>`, html.EscapeString(target), html.EscapeString("▶ "+label))
}

// plainText extracts the visible text of page, one paragraph per
// block. Links and images keep their targets in parentheses.
func plainText(page string) string {
	document, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return bluemonday.StrictPolicy().Sanitize(page)
	}
	document.Find("img").Each(func(_ int, image *goquery.Selection) {
		source, _ := image.Attr("src")
		label, _ := image.Attr("alt")
		if label == "" {
			label = "Image"
		}
		text := html.EscapeString(fmt.Sprintf("Image: %s (%s)", label, source))
		if goquery.NodeName(image.Parent()) == "body" {
			text = "<p>" + text + "</p>"
		}
		image.ReplaceWithHtml(text)
	})
	document.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		target, _ := link.Attr("href")
		if text := strings.TrimSpace(link.Text()); target != "" && text != target {
			link.SetText(text + " (" + target + ")")
		}
	})

	var blocks []string
	document.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, block *goquery.Selection) {
		if text := strings.Join(strings.Fields(block.Text()), " "); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return strings.Join(strings.Fields(document.Text()), " ")
	}
	return strings.Join(blocks, "\n\n")
}
