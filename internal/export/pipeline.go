// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package export rasterizes slide lists at the output format's canvas size
// and packages the bitmaps as a PNG archive or a paginated PDF.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"slidesmith/internal/models"
	"slidesmith/internal/render"
)

var (
	// ErrExportFailed wraps any rasterization or packaging failure. No
	// partial artifact is produced when it is returned.
	ErrExportFailed = errors.New("export failed")

	// ErrNothingToExport is returned for an empty slide list.
	ErrNothingToExport = errors.New("export: no slides")
)

// DefaultSettleDelay is the pause between materializing a slide and
// capturing it.
const DefaultSettleDelay = 500 * time.Millisecond

// Scene is a materialized slide ready for capture.
type Scene interface {
	Rasterize() (*image.RGBA, error)
	Release()
}

type prepareFunc func(ctx context.Context, slide models.Slide, project models.ProjectSettings, frame render.Frame) (Scene, error)

// Pipeline turns slide lists into bitmaps, one per slide, in list order.
type Pipeline struct {
	prepare prepareFunc
	settle  time.Duration
	workers int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSettleDelay sets the per-slide settle delay. Zero disables it.
func WithSettleDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.settle = max(d, 0) }
}

// WithWorkers sets how many slides are rasterized concurrently. One (the
// default) processes slides strictly one after another.
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = max(n, 1) }
}

// New creates a pipeline drawing with r.
func New(r *render.Renderer, opts ...Option) *Pipeline {
	p := &Pipeline{
		prepare: func(ctx context.Context, s models.Slide, ps models.ProjectSettings, f render.Frame) (Scene, error) {
			sc, err := r.Prepare(ctx, s, ps, f)
			if err != nil {
				return nil, err
			}
			return sc, nil
		},
		settle:  DefaultSettleDelay,
		workers: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rasterize captures every slide at the canvas size of project.Format. The
// result has exactly one bitmap per slide at the same index. Any failure
// discards all bitmaps and returns an error wrapping ErrExportFailed.
func (p *Pipeline) Rasterize(ctx context.Context, slides []models.Slide, project models.ProjectSettings) ([]*image.RGBA, error) {
	if len(slides) == 0 {
		return nil, ErrNothingToExport
	}
	if _, err := models.ParseFormat(string(project.Format)); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	canvas := project.Format.Canvas()
	out := make([]*image.RGBA, len(slides))

	if p.workers <= 1 {
		for i, s := range slides {
			img, err := p.capture(ctx, s, project, render.Frame{Canvas: canvas, Index: i, Total: len(slides)})
			if err != nil {
				return nil, fmt.Errorf("%w: slide %d: %w", ErrExportFailed, i+1, err)
			}
			out[i] = img
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, s := range slides {
		g.Go(func() error {
			img, err := p.capture(gctx, s, project, render.Frame{Canvas: canvas, Index: i, Total: len(slides)})
			if err != nil {
				return fmt.Errorf("%w: slide %d: %w", ErrExportFailed, i+1, err)
			}
			// Each goroutine owns one slot, so output order is the slide order.
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// capture materializes one slide, waits for it to settle and rasterizes
// it. The scene is released on every path.
func (p *Pipeline) capture(ctx context.Context, s models.Slide, project models.ProjectSettings, frame render.Frame) (*image.RGBA, error) {
	sc, err := p.prepare(ctx, s, project, frame)
	if err != nil {
		return nil, err
	}
	defer sc.Release()

	if p.settle > 0 {
		t := time.NewTimer(p.settle)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	img, err := sc.Rasterize()
	if err != nil {
		return nil, err
	}
	if b := img.Bounds(); b.Dx() != frame.Canvas.Width || b.Dy() != frame.Canvas.Height {
		return nil, fmt.Errorf("bitmap is %dx%d, want %dx%d", b.Dx(), b.Dy(), frame.Canvas.Width, frame.Canvas.Height)
	}
	return img, nil
}

// Kind selects the artifact packaging.
type Kind string

const (
	KindImages   Kind = "images"
	KindDocument Kind = "document"
)

// ParseKind accepts "images"/"png"/"zip" and "document"/"pdf".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "images", "png", "zip", "":
		return KindImages, nil
	case "document", "pdf":
		return KindDocument, nil
	}
	return "", fmt.Errorf("export: unknown kind %q", s)
}

// Artifact is a packaged export ready for download.
type Artifact struct {
	Kind        Kind
	Filename    string
	ContentType string
	Data        []byte
	// Pages is the number of slides packaged.
	Pages       int
	Orientation models.Orientation
}

// Export rasterizes slides and packages them as kind. name is the base
// filename without extension.
func (p *Pipeline) Export(ctx context.Context, kind Kind, name string, slides []models.Slide, project models.ProjectSettings) (*Artifact, error) {
	start := time.Now()
	bitmaps, err := p.Rasterize(ctx, slides, project)
	if err != nil {
		return nil, err
	}

	var a *Artifact
	switch kind {
	case KindImages:
		data, err := Archive(bitmaps)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
		}
		a = &Artifact{Kind: kind, Filename: name + ".zip", ContentType: "application/zip", Data: data}
	case KindDocument:
		data, err := Document(bitmaps, project.Format.Canvas(), name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
		}
		a = &Artifact{Kind: kind, Filename: name + ".pdf", ContentType: "application/pdf", Data: data}
	default:
		return nil, fmt.Errorf("export: unknown kind %q", kind)
	}
	a.Pages = len(bitmaps)
	a.Orientation = project.Format.Orientation()

	slog.Info("export finished",
		"kind", kind,
		"format", project.Format,
		"slides", len(bitmaps),
		"bytes", len(a.Data),
		"duration", time.Since(start),
	)
	return a, nil
}
