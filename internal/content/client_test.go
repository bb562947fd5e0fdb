package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"slidesmith/internal/ai"
	"slidesmith/internal/models"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
	system   string
	user     string
	schema   *ai.Schema
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, system, user string, schema *ai.Schema) (string, error) {
	f.calls++
	f.system, f.user, f.schema = system, user, schema
	return f.response, f.err
}

// moderatedGenerator adds prompt screening to fakeGenerator.
type moderatedGenerator struct {
	fakeGenerator
	result  *ai.ModerationResult
	modErr  error
	checked []string
}

func (m *moderatedGenerator) CheckPrompt(_ context.Context, text string) (*ai.ModerationResult, error) {
	m.checked = append(m.checked, text)
	return m.result, m.modErr
}

type memCache map[string][]string

func (m memCache) Get(_ context.Context, key string, dest any) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	*dest.(*[]string) = append([]string(nil), v...)
	return true
}

func (m memCache) Set(_ context.Context, key string, value any) {
	m[key] = value.([]string)
}

const threeSlides = `{"slides":[
 {"title":"Stop scrolling","content":"","highlight_keywords":["scrolling"],"image_prompt":"neon waves"},
 {"title":"Why it matters","content":"Attention is scarce.","highlight_keywords":["scarce"],"image_prompt":"hourglass"},
 {"title":"Act now","content":"Follow for more.","highlight_keywords":[],"image_prompt":"arrow"}
]}`

func TestGenerateFromIdea(t *testing.T) {
	gen := &fakeGenerator{response: threeSlides}
	c := NewClient(gen)

	got := c.GenerateFromIdea(context.Background(), "attention economy", ToneWitty)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[1].Title != "Why it matters" || got[1].HighlightKeywords[0] != "scarce" {
		t.Errorf("slide 1 = %+v", got[1])
	}
	if !strings.Contains(gen.user, `"attention economy"`) || !strings.Contains(gen.user, ToneWitty.Instruction()) {
		t.Errorf("user prompt = %q", gen.user)
	}
	if gen.schema != carouselSchema {
		t.Error("carousel schema not passed")
	}
	if IsFallback(got) {
		t.Error("real content reported as fallback")
	}
}

func TestGenerateFromIdea_TransportErrorFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("dial tcp: connection refused")}
	c := NewClient(gen)

	got := c.GenerateFromIdea(context.Background(), "anything", DefaultTone)
	if diff := cmp.Diff(Fallback(), got); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
	if len(got) != 2 || got[0].Title != FallbackTitle {
		t.Errorf("got %+v", got)
	}
}

func TestGenerateFromIdea_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
	}{
		{"no provider", nil},
		{"malformed json", &fakeGenerator{response: "Sure! Here are your slides"}},
		{"empty list", &fakeGenerator{response: `{"slides":[]}`}},
		{"only blank items", &fakeGenerator{response: `[{"title":" ","content":""}]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewClient(tt.gen).GenerateFromIdea(context.Background(), "idea", ToneBold)
			if !IsFallback(got) || got[0].Title != FallbackTitle {
				t.Errorf("got %+v, want fallback", got)
			}
		})
	}
}

func TestFallbackIsFreshCopy(t *testing.T) {
	a := Fallback()
	a[0].Title = "mutated"
	a[0].HighlightKeywords[0] = "mutated"

	b := Fallback()
	if b[0].Title != FallbackTitle || b[0].HighlightKeywords[0] != "Error" {
		t.Errorf("fallback shared state: %+v", b[0])
	}
}

func TestRegenerateFromPost(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		gen := &fakeGenerator{response: threeSlides}
		got := NewClient(gen).RegenerateFromPost(context.Background(), "My post", "Body text here.", ToneProfessional)
		if len(got) != 3 {
			t.Fatalf("len = %d", len(got))
		}
		if !strings.Contains(gen.user, "Body text here.") || !strings.Contains(gen.user, `"My post"`) {
			t.Errorf("user prompt = %q", gen.user)
		}
		if gen.system != regenerateSystemPrompt {
			t.Error("wrong system prompt")
		}
	})

	t.Run("failure retitles first slide", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("boom")}
		got := NewClient(gen).RegenerateFromPost(context.Background(), "t", "b", ToneBold)
		if got[0].Title != RegenerationFallbackTitle || !IsFallback(got) {
			t.Errorf("got %+v", got)
		}
		if Fallback()[0].Title != FallbackTitle {
			t.Error("regeneration fallback mutated the shared fallback")
		}
	})
}

var _ PromptChecker = (*ai.Registry)(nil)

func TestModeration(t *testing.T) {
	flagged := &ai.ModerationResult{Categories: []string{"violence"}}

	t.Run("flagged idea falls back without generating", func(t *testing.T) {
		gen := &moderatedGenerator{fakeGenerator: fakeGenerator{response: threeSlides}, result: flagged}
		got := NewClient(gen).GenerateFromIdea(context.Background(), "something nasty", ToneWitty)
		if !IsFallback(got) {
			t.Errorf("got %+v, want fallback", got)
		}
		if gen.calls != 0 {
			t.Errorf("generator called %d times after a flagged prompt", gen.calls)
		}
		if diff := cmp.Diff([]string{"something nasty"}, gen.checked); diff != "" {
			t.Errorf("checked (-want +got):\n%s", diff)
		}
	})

	t.Run("flagged post falls back", func(t *testing.T) {
		gen := &moderatedGenerator{fakeGenerator: fakeGenerator{response: threeSlides}, result: flagged}
		got := NewClient(gen).RegenerateFromPost(context.Background(), "Title", "Body", ToneBold)
		if got[0].Title != RegenerationFallbackTitle || gen.calls != 0 {
			t.Errorf("got %+v after %d calls", got, gen.calls)
		}
		if len(gen.checked) != 1 || !strings.Contains(gen.checked[0], "Title") || !strings.Contains(gen.checked[0], "Body") {
			t.Errorf("checked = %q", gen.checked)
		}
	})

	t.Run("safe prompt generates", func(t *testing.T) {
		gen := &moderatedGenerator{fakeGenerator: fakeGenerator{response: threeSlides}, result: &ai.ModerationResult{Safe: true}}
		got := NewClient(gen).GenerateFromIdea(context.Background(), "coffee", ToneWitty)
		if IsFallback(got) || len(got) != 3 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("moderation error lets the prompt through", func(t *testing.T) {
		gen := &moderatedGenerator{fakeGenerator: fakeGenerator{response: threeSlides}, modErr: errors.New("status 403")}
		got := NewClient(gen).GenerateFromIdea(context.Background(), "coffee", ToneWitty)
		if IsFallback(got) || gen.calls != 1 {
			t.Errorf("got %+v after %d calls", got, gen.calls)
		}
	})
}

func TestParseSlides(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"bare array", `[{"title":"A","content":"b"}]`, 1, false},
		{"wrapped object", threeSlides, 3, false},
		{"code fence", "```json\n[{\"title\":\"A\",\"content\":\"b\"}]\n```", 1, false},
		{"drops blank items", `[{"title":"A"},{"title":"","content":"  "},{"content":"c"}]`, 2, false},
		{"prose", "here you go", 0, true},
		{"empty", `[]`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSlides(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseSlides_CapsAtTen(t *testing.T) {
	var b strings.Builder
	b.WriteString("[")
	for i := range 14 {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"title":"T","content":"C"}`)
	}
	b.WriteString("]")

	got, err := ParseSlides(b.String())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 10 {
		t.Errorf("len = %d, want 10", len(got))
	}
}

func TestParseSlides_CleansKeywords(t *testing.T) {
	got, err := ParseSlides(`[{"title":" Hi ","highlight_keywords":["AI"," ai ","","growth"]}]`)
	if err != nil {
		t.Fatal(err)
	}
	want := models.GeneratedSlide{Title: "Hi", HighlightKeywords: []string{"AI", "growth"}}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("slide mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateHashtags(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
		want []string
	}{
		{"no provider", nil, []string{HashtagGenerationError}},
		{"api error", &fakeGenerator{err: errors.New("503")}, []string{HashtagAPIError}},
		{"bad format", &fakeGenerator{response: "#one #two"}, []string{HashtagInvalidFormat}},
		{"empty list", &fakeGenerator{response: `{"hashtags":[]}`}, []string{HashtagInvalidFormat}},
		{
			"normalises",
			&fakeGenerator{response: `{"hashtags":["#marketing","Marketing","smm"," #content tips"]}`},
			[]string{"marketing", "smm", "contenttips"},
		},
		{"bare array", &fakeGenerator{response: `["a","b"]`}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewClient(tt.gen).GenerateHashtags(context.Background(), "post text")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("hashtags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateHashtags_Cache(t *testing.T) {
	gen := &fakeGenerator{response: `{"hashtags":["one","two"]}`}
	mc := memCache{}
	c := NewClient(gen, WithCache(mc))

	first := c.GenerateHashtags(context.Background(), "same text")
	second := c.GenerateHashtags(context.Background(), "  same text ")
	if gen.calls != 1 {
		t.Errorf("provider calls = %d, want 1", gen.calls)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached result differs:\n%s", diff)
	}

	gen.err = errors.New("down")
	c.GenerateHashtags(context.Background(), "other text")
	if len(mc) != 1 {
		t.Errorf("failure markers were cached: %v", mc)
	}
}

func TestParseTone(t *testing.T) {
	tests := map[string]Tone{
		"":             ToneBold,
		"daring":       ToneBold,
		"BOLD":         ToneBold,
		"minimalistic": ToneMinimal,
		"witty":        ToneWitty,
		" empathetic ": ToneEmpathetic,
		"sarcastic":    ToneBold,
	}
	for in, want := range tests {
		if got := ParseTone(in); got != want {
			t.Errorf("ParseTone(%q) = %q, want %q", in, got, want)
		}
	}
	for _, info := range Tones {
		if info.Key.Instruction() == "" {
			t.Errorf("tone %q has no instruction", info.Key)
		}
	}
}
