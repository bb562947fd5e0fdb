// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package compose turns a slide list into the text formats: a long-form
// post, a newsletter and a numbered thread.
package compose

import (
	"fmt"
	"strings"

	"slidesmith/internal/markdown"
	"slidesmith/internal/models"
)

// Section is one heading plus paragraph of a long-form document.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Document is a long-form post or newsletter. The first slide provides the
// title and lead paragraph; each following slide becomes a section.
type Document struct {
	Format   models.Format `json:"format"`
	Title    string        `json:"title"`
	Lead     string        `json:"lead"`
	Sections []Section     `json:"sections"`
	Hashtags []string      `json:"hashtags,omitempty"`
}

// Placeholder text for documents built from an empty slide list.
var placeholders = map[models.Format][2]string{
	models.FormatPost:       {"Title not found", "No content was generated."},
	models.FormatNewsletter: {"[Newsletter title]", "Start writing here..."},
}

// Post builds a long-form post. hashtags, when present, are appended as a
// closing line.
func Post(slides []models.Slide, hashtags []string) Document {
	d := build(models.FormatPost, slides)
	d.Hashtags = append([]string(nil), hashtags...)
	return d
}

// Newsletter builds a newsletter issue.
func Newsletter(slides []models.Slide) Document {
	return build(models.FormatNewsletter, slides)
}

func build(format models.Format, slides []models.Slide) Document {
	d := Document{Format: format}
	if len(slides) == 0 {
		p := placeholders[format]
		d.Title, d.Lead = p[0], p[1]
		return d
	}
	d.Title = strings.TrimSpace(slides[0].Title)
	d.Lead = strings.TrimSpace(slides[0].Content)
	for _, s := range slides[1:] {
		d.Sections = append(d.Sections, Section{
			Heading: strings.TrimSpace(s.Title),
			Body:    strings.TrimSpace(s.Content),
		})
	}
	return d
}

// Markdown renders the document as Markdown.
func (d Document) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	if d.Lead != "" {
		b.WriteString(d.Lead)
		b.WriteString("\n\n")
	}
	for _, s := range d.Sections {
		if s.Heading != "" {
			fmt.Fprintf(&b, "### %s\n\n", s.Heading)
		}
		if s.Body != "" {
			b.WriteString(s.Body)
			b.WriteString("\n\n")
		}
	}
	if tags := HashtagLine(d.Hashtags); tags != "" {
		b.WriteString(tags)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Body returns the document text without its title, as sent back for
// regeneration.
func (d Document) Body() string {
	var parts []string
	if d.Lead != "" {
		parts = append(parts, d.Lead)
	}
	for _, s := range d.Sections {
		parts = append(parts, strings.TrimSpace(s.Heading+"\n"+s.Body))
	}
	return strings.Join(parts, "\n\n")
}

// PlainText is the copy-to-clipboard form: title, body and hashtags.
func (d Document) PlainText() string {
	parts := []string{d.Title}
	if body := d.Body(); body != "" {
		parts = append(parts, body)
	}
	if tags := HashtagLine(d.Hashtags); tags != "" {
		parts = append(parts, tags)
	}
	return strings.Join(parts, "\n\n")
}

// HashtagLine formats hashtags as "#one #two".
func HashtagLine(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimLeft(strings.TrimSpace(t), "#"); t != "" {
			out = append(out, "#"+t)
		}
	}
	return strings.Join(out, " ")
}

// HTML renders Markdown source to HTML wrapped in an article tagged with
// the editor theme.
func HTML(source string, theme models.Theme) (string, error) {
	inner, err := markdown.ToHTML(source)
	if err != nil {
		return "", fmt.Errorf("compose: render markdown: %w", err)
	}
	return fmt.Sprintf("<article class=\"compose theme-%s\">\n%s</article>\n", theme, inner), nil
}
