// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/jsonc"
)

// Project is one gallery entry.
type Project struct {
	Name         string   `json:"name" validate:"required"`
	Properties   string   `json:"properties"`
	Tags         []string `json:"tags" validate:"dive,required"`
	Technologies []string `json:"technologies" validate:"dive,required"`

	// Image is a media identifier for the cover image.
	Image string `json:"image" validate:"required"`

	// Content is the page key, e.g. "pages/copd.html".
	Content string `json:"content" validate:"required"`

	Year int `json:"year" validate:"gte=1900,lte=2100"`
}

// Key returns the short identifier used on the command line: the page
// file name without directory or extension.
func (p Project) Key() string {
	key := p.Content
	if slash := strings.LastIndexByte(key, '/'); slash >= 0 {
		key = key[slash+1:]
	}
	if dot := strings.LastIndexByte(key, '.'); dot > 0 {
		key = key[:dot]
	}
	return key
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseProjects parses a JSONC manifest, validates every record and
// removes duplicate tags and technologies.
func ParseProjects(data []byte) ([]Project, error) {
	var projects []Project
	if err := json.Unmarshal(jsonc.ToJSON(data), &projects); err != nil {
		return nil, fmt.Errorf("parsing project manifest: %w", err)
	}

	var problems []string
	for i := range projects {
		project := &projects[i]
		project.Tags = dedupe(project.Tags)
		project.Technologies = dedupe(project.Technologies)
		if err := validate.Struct(project); err != nil {
			problems = append(problems, describeValidation(i, err)...)
		}
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid project manifest: %s", strings.Join(problems, "; "))
	}
	return projects, nil
}

func describeValidation(index int, err error) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{fmt.Sprintf("project %d: %v", index, err)}
	}
	problems := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		problems = append(problems, fmt.Sprintf("project %d: %s failed %q", index, fieldError.Field(), fieldError.Tag()))
	}
	return problems
}

// dedupe drops repeated values, keeping first occurrences in order.
func dedupe(values []string) []string {
	if len(values) < 2 {
		return values
	}
	seen := make(map[string]bool, len(values))
	result := values[:0]
	for _, value := range values {
		if seen[value] {
			continue
		}
		seen[value] = true
		result = append(result, value)
	}
	return result
}
