// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"fmt"
	"strings"

	"slidesmith/internal/models"
)

// ThreadRegenerateTitle is the title sent with a thread when it is turned
// back into a carousel; threads have no title of their own.
const ThreadRegenerateTitle = "Turn this thread into a carousel"

// ThreadEntry is one numbered post of a thread.
type ThreadEntry struct {
	Position int    `json:"position"`
	Total    int    `json:"total"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

// Counter is the "i/n" marker shown under the entry.
func (e ThreadEntry) Counter() string {
	return fmt.Sprintf("%d/%d", e.Position, e.Total)
}

// Thread builds one entry per slide, numbered from 1.
func Thread(slides []models.Slide) []ThreadEntry {
	out := make([]ThreadEntry, len(slides))
	for i, s := range slides {
		out[i] = ThreadEntry{
			Position: i + 1,
			Total:    len(slides),
			Title:    strings.TrimSpace(s.Title),
			Body:     strings.TrimSpace(s.Content),
		}
	}
	return out
}

// ThreadMarkdown renders entries as bold titles with their counters,
// separated by rules.
func ThreadMarkdown(entries []ThreadEntry) string {
	if len(entries) == 0 {
		return "Start writing here...\n"
	}
	blocks := make([]string, len(entries))
	for i, e := range entries {
		blocks[i] = fmt.Sprintf("**%s**\n%s\n\n*%s*", e.Title, e.Body, e.Counter())
	}
	return strings.Join(blocks, "\n\n---\n\n") + "\n"
}

// ThreadText is the plain copy form of a thread.
func ThreadText(entries []ThreadEntry) string {
	blocks := make([]string, len(entries))
	for i, e := range entries {
		blocks[i] = strings.TrimSpace(e.Title+"\n"+e.Body) + "\n" + e.Counter()
	}
	return strings.Join(blocks, "\n\n")
}
