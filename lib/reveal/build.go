// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reveal

import "time"

// Scroll section timing.
const (
	TitleDelay = 300 * time.Millisecond
	TitleSpeed = 50 * time.Millisecond
	ItemDelay  = 800 * time.Millisecond
	ItemStep   = 200 * time.Millisecond
	ItemSpeed  = 30 * time.Millisecond
)

// Section returns the entries of a scroll section: a typed title, one
// typed list item per description line staggered by ItemStep from
// ItemDelay, and the image one step after the last item. An empty
// image identifier omits the image entry.
func Section(title string, items []string, image string) []Entry {
	entries := make([]Entry, 0, len(items)+2)
	entries = append(entries, Entry{Kind: Title, Delay: TitleDelay, Content: title, Speed: TitleSpeed})
	for i, item := range items {
		entries = append(entries, Entry{
			Kind:    ListItem,
			Delay:   ItemDelay + time.Duration(i)*ItemStep,
			Content: item,
			Speed:   ItemSpeed,
		})
	}
	if image != "" {
		entries = append(entries, Entry{
			Kind:    Image,
			Delay:   ItemDelay + time.Duration(len(items))*ItemStep,
			Content: image,
		})
	}
	return entries
}

// Stagger returns untyped entries of one kind entering at base,
// base+step, base+2*step and so on.
func Stagger(kind Kind, contents []string, base, step time.Duration) []Entry {
	entries := make([]Entry, len(contents))
	for i, content := range contents {
		entries[i] = Entry{Kind: kind, Delay: base + time.Duration(i)*step, Content: content}
	}
	return entries
}
