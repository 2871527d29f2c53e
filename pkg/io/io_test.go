package io

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/geometry"
	"github.com/matzehuels/gridstack/pkg/grid"
)

func sampleDocument() Document {
	return Document{
		Cols: 12,
		Layout: grid.Layout{
			{ID: "a", X: 0, Y: 0, W: 2, H: 2, MinW: 1},
			{ID: "b", X: 2, Y: 0, W: 4, H: 1, Static: true, Draggable: grid.Bool(true),
				ResizeHandles: []geometry.Handle{geometry.HandleE, geometry.HandleS}},
		},
		Layouts: map[string]grid.Layout{
			"sm": {{ID: "a", X: 0, Y: 0, W: 2, H: 2}},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatTOML} {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "layout."+string(f))
			want := sampleDocument()
			if err := Export(path, want); err != nil {
				t.Fatalf("Export() error: %v", err)
			}
			got, err := Import(path)
			if err != nil {
				t.Fatalf("Import() error: %v", err)
			}
			if got.Cols != want.Cols || !got.Layout.Equal(want.Layout) || !got.Layouts["sm"].Equal(want.Layouts["sm"]) {
				t.Errorf("round trip = %+v, want %+v", got, want)
			}
		})
	}
}

func TestReadJSONBareArray(t *testing.T) {
	in := `[{"id":"a","x":1,"y":2,"w":3,"h":4,"data":{"title":"Revenue"}}]`
	doc, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if len(doc.Layout) != 1 {
		t.Fatalf("len = %d, want 1", len(doc.Layout))
	}
	it := doc.Layout[0]
	if it.X != 1 || it.Y != 2 || it.W != 3 || it.H != 4 {
		t.Errorf("item = %+v", it)
	}
	var data struct{ Title string }
	if err := json.Unmarshal(it.Data, &data); err != nil || data.Title != "Revenue" {
		t.Errorf("data = %s, want passthrough", it.Data)
	}
}

func TestReadValidates(t *testing.T) {
	in := `{"layout":[{"id":"a","w":1,"h":1}],"layouts":{"sm":[{"id":"a","w":1,"h":1},{"id":"a","w":0,"h":1}]}}`
	_, err := ReadJSON(strings.NewReader(in))
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Fatalf("ReadJSON() error = %v, want INVALID_LAYOUT", err)
	}
	var paths []string
	for _, is := range errors.Issues(err) {
		paths = append(paths, is.Path)
	}
	want := "layouts.sm.layout[1].w,layouts.sm.layout[1].id"
	if got := strings.Join(paths, ","); got != want {
		t.Errorf("paths = %s, want %s", got, want)
	}
}

func TestReadMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`{"layout":`)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadJSON(truncated) error = %v, want INVALID_FORMAT", err)
	}
	if _, err := ReadTOML(strings.NewReader("[[layout]]\nid = \"a\"\nw = 1\nh = 1\ncolour = \"red\"\n")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadTOML(unknown key) error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadTOML(t *testing.T) {
	in := `
cols = 6

[[layout]]
id = "a"
w = 2
h = 2

[[layout]]
id = "b"
x = 2
w = 2
h = 1
static = true
resize_handles = ["se"]
`
	doc, err := ReadTOML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTOML() error: %v", err)
	}
	if doc.Cols != 6 || len(doc.Layout) != 2 || !doc.Layout[1].Static || doc.Layout[1].ResizeHandles[0] != geometry.HandleSE {
		t.Errorf("ReadTOML() = %+v", doc)
	}
}

func TestWriteClearsMoved(t *testing.T) {
	var buf bytes.Buffer
	doc := Document{Layout: grid.Layout{{ID: "a", W: 1, H: 1, Moved: true}}}
	if err := Write(&buf, doc, FormatJSON); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if strings.Contains(buf.String(), "moved") {
		t.Errorf("Write() kept transient flag:\n%s", buf.String())
	}
	if !doc.Layout[0].Moved {
		t.Error("Write() mutated its input")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.json", FormatJSON, false},
		{"dir/a.TOML", FormatTOML, false},
		{"a.yaml", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v, want %q", tt.path, got, err, tt.want)
		}
	}
}
