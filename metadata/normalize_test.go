package metadata

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// upperFormatter wraps its input in a paragraph and counts resets.
type upperFormatter struct {
	resets int
}

func (f *upperFormatter) Render(source []byte) ([]byte, error) {
	return []byte("<p>" + strings.ToUpper(string(source)) + "</p>"), nil
}

func (f *upperFormatter) Reset() { f.resets++ }

func newTestNormalizer() *Normalizer {
	settings := DefaultSettings()
	settings.Location = time.UTC
	return &Normalizer{Settings: settings, Formatter: &upperFormatter{}, Log: discardLogger()}
}

func TestNormalize(t *testing.T) {
	tests := map[string]struct {
		raw  Raw
		want Metadata
	}{
		"pass through": {
			raw:  Raw{"title": "Hello", "weight": int64(3)},
			want: Metadata{"title": "Hello", "weight": int64(3)},
		},
		"scalar tags": {
			raw:  Raw{"tags": "a, b"},
			want: Metadata{"tags": []Tag{NewTag("a, b")}},
		},
		"tag list": {
			raw:  Raw{"tags": []interface{}{" a ", "b", ""}},
			want: Metadata{"tags": []Tag{NewTag("a"), NewTag("b")}},
		},
		"empty tags are omitted": {
			raw:  Raw{"tags": []interface{}{" ", ""}},
			want: Metadata{},
		},
		"single author": {
			raw:  Raw{"author": "A"},
			want: Metadata{"author": NewAuthor("A")},
		},
		"single author list": {
			raw:  Raw{"author": []interface{}{"A"}},
			want: Metadata{"author": NewAuthor("A")},
		},
		"author list is pluralized": {
			raw:  Raw{"author": []interface{}{"A", "B"}},
			want: Metadata{"authors": []Author{NewAuthor("A"), NewAuthor("B")}},
		},
		"authors scalar": {
			raw:  Raw{"authors": "A"},
			want: Metadata{"authors": []Author{NewAuthor("A")}},
		},
		"category": {
			raw:  Raw{"category": " News "},
			want: Metadata{"category": NewCategory("News")},
		},
		"empty category is omitted": {
			raw:  Raw{"category": ""},
			want: Metadata{},
		},
		"strip rules": {
			raw:  Raw{"slug": " my-post ", "save_as": "", "status": " draft"},
			want: Metadata{"slug": "my-post", "status": "draft"},
		},
		"non-string slug": {
			raw:  Raw{"slug": int64(2020)},
			want: Metadata{"slug": "2020"},
		},
		"dates": {
			raw: Raw{"date": "2020-01-02", "modified": "2020-01-03_04:05"},
			want: Metadata{
				"date":     time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
				"modified": time.Date(2020, 1, 3, 4, 5, 0, 0, time.UTC),
			},
		},
		"nil values dropped": {
			raw:  Raw{"title": nil, "tags": []interface{}{nil, "a", nil}},
			want: Metadata{"tags": []Tag{NewTag("a")}},
		},
		"duplicates allowed by default": {
			raw:  Raw{"link": []interface{}{"x", "y"}},
			want: Metadata{"link": []interface{}{"x", "y"}},
		},
		"formatted field": {
			raw:  Raw{"summary": "short"},
			want: Metadata{"summary": "<p>SHORT</p>"},
		},
		"formatted list is joined": {
			raw:  Raw{"summary": []interface{}{"one", "two"}},
			want: Metadata{"summary": "<p>ONE\nTWO</p>"},
		},
	}
	for label, test := range tests {
		t.Run(label, func(t *testing.T) {
			got, err := newTestNormalizer().Normalize(test.raw, "a.md")
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeDuplicates(t *testing.T) {
	var buf bytes.Buffer
	n := newTestNormalizer()
	n.Log = slog.New(slog.NewTextHandler(&buf, nil))

	got, err := n.Normalize(Raw{
		"slug":     []interface{}{"first", "second"},
		"category": []interface{}{"A", "B"},
		"tags":     []interface{}{"x", "y"},
	}, "posts/a.md")
	if err != nil {
		t.Fatal(err)
	}
	want := Metadata{
		"slug":     "first",
		"category": NewCategory("A"),
		"tags":     []Tag{NewTag("x"), NewTag("y")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	log := buf.String()
	if got, want := strings.Count(log, "Duplicate definition"), 2; got != want {
		t.Errorf("got %d duplicate warnings, want %d:\n%s", got, want, log)
	}
	if !strings.Contains(log, "field=slug") || !strings.Contains(log, "path=posts/a.md") {
		t.Errorf("warning does not name the field and path:\n%s", log)
	}
}

func TestNormalizeDuplicatePolicy(t *testing.T) {
	n := newTestNormalizer()
	n.Settings.DuplicatesAllowed = map[string]bool{"slug": true}
	got, err := n.Normalize(Raw{"category": []interface{}{"A", "B"}}, "a.md")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got["category"].(Category); !ok {
		t.Errorf("got %#v, want a single category", got["category"])
	}
}

func TestNormalizeAuthorAndAuthors(t *testing.T) {
	t.Run("pluralized author and authors", func(t *testing.T) {
		got, err := newTestNormalizer().Normalize(Raw{
			"author":  []interface{}{"A", "B"},
			"authors": []interface{}{"C"},
		}, "a.md")
		if err != nil {
			t.Fatal(err)
		}
		want := Metadata{"authors": []Author{NewAuthor("A"), NewAuthor("B"), NewAuthor("C")}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("single author and authors", func(t *testing.T) {
		got, err := newTestNormalizer().Normalize(Raw{
			"author":  "A",
			"authors": []interface{}{"B"},
		}, "a.md")
		if err != nil {
			t.Fatal(err)
		}
		want := Metadata{"authors": []Author{NewAuthor("A"), NewAuthor("B")}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestNormalizeFormatterReset(t *testing.T) {
	f := &upperFormatter{}
	n := newTestNormalizer()
	n.Settings.FormattedFields = []string{"summary", "note"}
	n.Formatter = f
	if _, err := n.Normalize(Raw{"summary": "a", "note": "b"}, "a.md"); err != nil {
		t.Fatal(err)
	}
	if f.resets != 2 {
		t.Errorf("got %d resets, want 2", f.resets)
	}
}

func TestNormalizeInvalidDate(t *testing.T) {
	_, err := newTestNormalizer().Normalize(Raw{"date": "yesterday-ish"}, "a.md")
	if err == nil {
		t.Fatal("got no error, want not nil err")
	}
	if !strings.Contains(err.Error(), "a.md") {
		t.Errorf("got %q, want it to name the source path", err)
	}
}
