// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package content

// Site is the copy shown around the projects.
type Site struct {
	Owner    string       `yaml:"owner"`
	Home     HomeCopy     `yaml:"home"`
	Projects ProjectsCopy `yaml:"projects"`
	About    AboutCopy    `yaml:"about"`
}

// HomeCopy is the text of the Home tab.
type HomeCopy struct {
	Greeting   string    `yaml:"greeting"`
	Welcome    string    `yaml:"welcome"`
	ScrollHint string    `yaml:"scroll_hint"`
	WorkOn     string    `yaml:"work_on"`
	Sections   []Section `yaml:"sections"`
	CTA        CTA       `yaml:"cta"`
}

// Section is one scroll section on the Home tab.
type Section struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
	Image string   `yaml:"image"`
}

// CTA is the call to action at the bottom of the Home tab.
type CTA struct {
	Title  string `yaml:"title"`
	Button string `yaml:"button"`
}

// ProjectsCopy is the text of the Projects tab.
type ProjectsCopy struct {
	Footer string `yaml:"footer"`
}

// AboutCopy is the text of the About tab.
type AboutCopy struct {
	Location     string   `yaml:"location"`
	Tags         []string `yaml:"tags"`
	FlipHint     string   `yaml:"flip_hint"`
	ConnectTitle string   `yaml:"connect_title"`
	Links        []Link   `yaml:"links"`
	Bio          []string `yaml:"bio"`
}

// Link is a contact link on the back of the profile card.
type Link struct {
	Label  string `yaml:"label"`
	Handle string `yaml:"handle"`
	URL    string `yaml:"url"`
}
