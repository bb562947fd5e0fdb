package compose

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"slidesmith/internal/models"
)

func slideList(pairs ...string) []models.Slide {
	var out []models.Slide
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.Slide{Title: pairs[i], Content: pairs[i+1]})
	}
	return out
}

func TestPost(t *testing.T) {
	s := slideList("Big idea", "Why it matters.", "Step one", "Start small.", "Step two", "Keep going.")
	d := Post(s, []string{"growth", "#smm"})

	want := Document{
		Format: models.FormatPost,
		Title:  "Big idea",
		Lead:   "Why it matters.",
		Sections: []Section{
			{Heading: "Step one", Body: "Start small."},
			{Heading: "Step two", Body: "Keep going."},
		},
		Hashtags: []string{"growth", "#smm"},
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("Post mismatch (-want +got):\n%s", diff)
	}

	md := d.Markdown()
	for _, part := range []string{"# Big idea\n", "### Step one\n", "Keep going.", "#growth #smm"} {
		if !strings.Contains(md, part) {
			t.Errorf("Markdown missing %q:\n%s", part, md)
		}
	}
	if strings.Contains(d.Body(), "Big idea") {
		t.Error("Body includes the title")
	}
}

func TestEmptyDocuments(t *testing.T) {
	if d := Post(nil, nil); d.Title != "Title not found" {
		t.Errorf("Post title = %q", d.Title)
	}
	if d := Newsletter(nil); d.Title != "[Newsletter title]" || d.Format != models.FormatNewsletter {
		t.Errorf("Newsletter = %+v", d)
	}
	if got := ThreadMarkdown(nil); !strings.Contains(got, "Start writing") {
		t.Errorf("ThreadMarkdown(nil) = %q", got)
	}
}

func TestThread(t *testing.T) {
	entries := Thread(slideList("One", "first", "Two", "second", "Three", "third"))
	if len(entries) != 3 {
		t.Fatalf("len = %d", len(entries))
	}
	for i, e := range entries {
		if e.Position != i+1 || e.Total != 3 {
			t.Errorf("entry %d = %+v", i, e)
		}
	}
	if got := entries[1].Counter(); got != "2/3" {
		t.Errorf("Counter = %q", got)
	}
	text := ThreadText(entries)
	if !strings.HasPrefix(text, "One\nfirst\n1/3") || !strings.HasSuffix(text, "3/3") {
		t.Errorf("ThreadText = %q", text)
	}
}

func TestHTML(t *testing.T) {
	d := Newsletter(slideList("Weekly", "Hello <b>there</b>", "News", "Things happened."))
	out, err := HTML(d.Markdown(), models.ThemeLight)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `class="compose theme-light"`) || !strings.Contains(out, "<h1") {
		t.Errorf("HTML = %q", out)
	}
	if strings.Contains(out, "<b>there</b>") {
		t.Error("inline raw HTML passed through")
	}
}

func TestHashtagLine(t *testing.T) {
	if got := HashtagLine([]string{"a", " #b ", "", "##c"}); got != "#a #b #c" {
		t.Errorf("HashtagLine = %q", got)
	}
}
