// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// fake AI collaborators, a fake publisher and request helpers.
package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"slidesmith/internal/ai"
	"slidesmith/internal/content"
	"slidesmith/internal/editor"
	"slidesmith/internal/export"
	"slidesmith/internal/render"
	"slidesmith/internal/storage"
)

const fiveSlides = `{"slides":[
	{"title":"Coffee rules","content":"","highlight_keywords":["Coffee"],"image_prompt":"steam"},
	{"title":"Beans","content":"Pick fresh beans.","highlight_keywords":["fresh"],"image_prompt":"beans"},
	{"title":"Grind","content":"Grind right before brewing.","highlight_keywords":[],"image_prompt":"grinder"},
	{"title":"Water","content":"Use filtered water at 94 degrees.","highlight_keywords":["94"],"image_prompt":"kettle"},
	{"title":"Enjoy","content":"Slow down and enjoy.","highlight_keywords":["enjoy"],"image_prompt":"cup"}
]}`

// fakeGenerator answers slide and hashtag requests with canned JSON.
type fakeGenerator struct {
	mu       sync.Mutex
	slides   string
	hashtags string
	err      error
	prompts  []string
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, _, user string, schema *ai.Schema) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, user)
	if f.err != nil {
		return "", f.err
	}
	if schema != nil && schema.Properties["hashtags"] != nil {
		return f.hashtags, nil
	}
	return f.slides, nil
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

// fakeAI implements AIRegistry.
type fakeAI struct {
	active   string
	images   bool
	imageErr error
}

func (f *fakeAI) ActiveName() string { return f.active }
func (f *fakeAI) Available() []string { return []string{"gemini", "openai"} }
func (f *fakeAI) SupportsImageGeneration() bool { return f.images }
func (f *fakeAI) SetActive(name string) error {
	if name != "gemini" && name != "openai" {
		return errors.New("unknown provider")
	}
	f.active = name
	return nil
}
func (f *fakeAI) GenerateImage(_ context.Context, _ string) ([]byte, string, error) {
	if f.imageErr != nil {
		return nil, "", f.imageErr
	}
	return pngBytes(4, 4), "image/png", nil
}

// fakePublisher records published artifacts.
type fakePublisher struct {
	names []string
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, filename, _ string, data []byte) (*storage.Published, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.names = append(f.names, filename)
	return &storage.Published{Key: "exports/" + filename, URL: "https://cdn.example.com/exports/" + filename}, nil
}

type testEnv struct {
	api       *API
	gen       *fakeGenerator
	ai        *fakeAI
	publisher *fakePublisher
	sessions  *editor.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	rdr, err := render.New()
	if err != nil {
		t.Fatal(err)
	}
	env := &testEnv{
		gen:       &fakeGenerator{slides: fiveSlides, hashtags: `{"hashtags":["#coffee","brewing","Coffee"]}`},
		ai:        &fakeAI{active: "gemini", images: true},
		publisher: &fakePublisher{},
		sessions:  editor.NewManager(time.Millisecond),
	}
	env.api = NewAPI(Deps{
		Sessions:  env.sessions,
		Content:   content.NewClient(env.gen),
		AI:        env.ai,
		Renderer:  rdr,
		Exports:   export.New(rdr, export.WithSettleDelay(0), export.WithWorkers(2)),
		Publisher: env.publisher,
	})
	t.Cleanup(env.sessions.Close)
	return env
}

// call runs handler with the given JSON body and chi URL params.
func call(handler http.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

// newSession creates a session through the API and returns its id.
func (env *testEnv) newSession(t *testing.T) string {
	t.Helper()
	rr := call(env.api.CreateSession, http.MethodPost, "/api/sessions", `{"idea":"coffee","tone":"witty"}`, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", rr.Code, rr.Body)
	}
	var resp generationResponse
	decode(t, rr, &resp)
	return resp.Session.ID
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

func mutation(t *testing.T, rr *httptest.ResponseRecorder) mutationResponse {
	t.Helper()
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body)
	}
	var m mutationResponse
	decode(t, rr, &m)
	return m
}

func pngBytes(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{0x20, 0x80, 0xc0, 0xff})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func pngDataURL(w, h int) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(w, h))
}

// oversizedPNGDataURL holds only a PNG signature and an IHDR chunk declaring
// a 20000×20000 RGBA image.
func oversizedPNGDataURL() string {
	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], 20000)
	binary.BigEndian.PutUint32(ihdr[4:8], 20000)
	ihdr[8], ihdr[9] = 8, 6

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr[:]...)
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
