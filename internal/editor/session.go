// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor holds in-memory editing sessions: one slide collection
// with its project settings, theme, tone, uploaded images and autosave
// indicator. Sessions are not persisted.
package editor

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"slidesmith/internal/content"
	"slidesmith/internal/export"
	"slidesmith/internal/models"
	"slidesmith/internal/slides"
)

// MaxUserImages bounds the per-session library of uploaded backgrounds.
const MaxUserImages = 12

// Session is one editing session. All methods are safe for concurrent use;
// mutations are serialized.
type Session struct {
	id      string
	created time.Time

	mu       sync.Mutex
	slides   *slides.Collection
	project  models.ProjectSettings
	theme    models.Theme
	tone     content.Tone
	idea     string
	images   []string
	hashtags []string
	lastSeen time.Time

	autosave *Autosaver
	export   export.Guard
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	ID        string                 `json:"id"`
	CreatedAt time.Time              `json:"created_at"`
	Slides    []models.Slide         `json:"slides"`
	Selected  int                    `json:"selected"`
	Project   models.ProjectSettings `json:"project"`
	Theme     models.Theme           `json:"theme"`
	Tone      content.Tone           `json:"tone"`
	Idea      string                 `json:"idea,omitempty"`
	Images    []string               `json:"images"`
	Hashtags  []string               `json:"hashtags,omitempty"`
	SaveState SaveState              `json:"save_state"`
	SavedAt   time.Time              `json:"saved_at,omitzero"`
	Exporting bool                   `json:"exporting"`
}

func newSession(autosaveDelay time.Duration) *Session {
	now := time.Now()
	return &Session{
		id:       uuid.NewString(),
		created:  now,
		slides:   slides.New(),
		project:  models.DefaultProjectSettings(),
		theme:    models.ThemeDark,
		tone:     content.DefaultTone,
		images:   []string{},
		lastSeen: now,
		autosave: NewAutosaver(autosaveDelay),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	state, savedAt := s.autosave.State()
	return Snapshot{
		ID:        s.id,
		CreatedAt: s.created,
		Slides:    s.slides.Slides(),
		Selected:  s.slides.Selected(),
		Project:   s.project,
		Theme:     s.theme,
		Tone:      s.tone,
		Idea:      s.idea,
		Images:    slices.Clone(s.images),
		Hashtags:  slices.Clone(s.hashtags),
		SaveState: state,
		SavedAt:   savedAt,
		Exporting: s.export.Running(),
	}
}

// Load replaces the slide list with freshly generated content.
func (s *Session) Load(generated models.GeneratedContent, idea string, tone content.Tone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.slides.Ingest(generated); err != nil {
		return err
	}
	if idea != "" {
		s.idea = idea
	}
	s.tone = tone
	s.hashtags = nil
	s.touch()
	return nil
}

// Edit runs fn against the slide collection under the session lock. fn
// reports whether it changed anything; changes restart the autosave timer.
func (s *Session) Edit(fn func(c *slides.Collection) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := fn(s.slides)
	if changed {
		s.touch()
	}
	return changed
}

// EditErr is Edit for operations that can fail.
func (s *Session) EditErr(fn func(c *slides.Collection) (bool, error)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed, err := fn(s.slides)
	if changed {
		s.touch()
	}
	return changed, err
}

// Slides returns a copy of the slide list.
func (s *Session) Slides() []models.Slide {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slides.Slides()
}

// Slide returns a copy of the slide with id and its position.
func (s *Session) Slide(id string) (models.Slide, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slides.Find(id)
}

// Project returns the project settings.
func (s *Session) Project() models.ProjectSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project
}

// SetProject replaces the project settings. A blank author name falls
// back to the default handle.
func (s *Session) SetProject(p models.ProjectSettings) error {
	if _, err := models.ParseFormat(string(p.Format)); err != nil {
		return err
	}
	p.AuthorName = strings.TrimSpace(p.AuthorName)
	if p.AuthorName == "" {
		p.AuthorName = models.DefaultAuthorName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = p
	s.touch()
	return nil
}

// ToggleTheme flips the editor theme and returns the new one.
func (s *Session) ToggleTheme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = s.theme.Toggle()
	return s.theme
}

// Theme returns the editor theme.
func (s *Session) Theme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Tone returns the tone the slides were last generated with.
func (s *Session) Tone() content.Tone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tone
}

// AddImage puts an uploaded image at the front of the library. Duplicates
// move to the front; the oldest image is dropped past MaxUserImages.
func (s *Session) AddImage(dataURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = slices.DeleteFunc(s.images, func(img string) bool { return img == dataURL })
	s.images = slices.Insert(s.images, 0, dataURL)
	if len(s.images) > MaxUserImages {
		s.images = s.images[:MaxUserImages]
	}
}

// SetHashtags stores the last generated hashtags.
func (s *Session) SetHashtags(tags []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashtags = slices.Clone(tags)
}

// Hashtags returns the last generated hashtags.
func (s *Session) Hashtags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.hashtags)
}

// RegenerationSource returns the post a regeneration is based on: the
// first slide title, and every slide's title and content as the body.
func (s *Session) RegenerationSource() (title, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.slides.Slides()
	if len(list) == 0 {
		return "", ""
	}
	parts := make([]string, len(list))
	for i, sl := range list {
		parts[i] = sl.Title + "\n" + sl.Content
	}
	return list[0].Title, strings.Join(parts, "\n\n")
}

// BeginExport marks an export as running. It fails with
// export.ErrExportInProgress while another export of this session runs.
func (s *Session) BeginExport() (done func(), err error) {
	return s.export.Begin()
}

// idleSince returns the time of the last access.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) close() {
	s.autosave.Stop()
}

// touch must be called with s.mu held.
func (s *Session) touch() {
	s.lastSeen = time.Now()
	s.autosave.Touch()
}
