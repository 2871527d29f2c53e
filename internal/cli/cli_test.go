package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/grid"
	layoutio "github.com/matzehuels/gridstack/pkg/io"
	"github.com/matzehuels/gridstack/pkg/observability"
)

// quiet discards command output for the rest of the test.
func quiet(t *testing.T) {
	t.Helper()
	old := stdout
	stdout = io.Discard
	t.Cleanup(func() { stdout = old })
}

// testEnv is a temp directory with a config file and a CLI pointed at it.
type testEnv struct {
	dir    string
	config string
	logs   bytes.Buffer
}

func newTestEnv(t *testing.T, config string) *testEnv {
	t.Helper()
	t.Cleanup(observability.Reset)
	quiet(t)

	env := &testEnv{dir: t.TempDir()}
	env.config = filepath.Join(env.dir, "gridstack.toml")
	config += "\n[store]\nbackend = \"file\"\ndir = \"" + filepath.ToSlash(filepath.Join(env.dir, "snapshots")) + "\"\n"
	if err := os.WriteFile(env.config, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}
	return env
}

func (env *testEnv) write(t *testing.T, name string, doc layoutio.Document) string {
	t.Helper()
	path := filepath.Join(env.dir, name)
	if err := layoutio.Export(path, doc); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	return path
}

func (env *testEnv) run(args ...string) error {
	c := New(&env.logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", env.config}, args...))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func readLayout(t *testing.T, path string) grid.Layout {
	t.Helper()
	doc, err := layoutio.Import(path)
	if err != nil {
		t.Fatalf("Import(%s) error = %v", path, err)
	}
	return doc.Layout
}

func mustItem(t *testing.T, l grid.Layout, id string) grid.Item {
	t.Helper()
	it, ok := l.Item(id)
	if !ok {
		t.Fatalf("layout has no item %q: %v", id, l.IDs())
	}
	return it
}

const gridConfig = "[grid]\ncols = 12\n"

func twoItems() layoutio.Document {
	return layoutio.Document{Layout: grid.Layout{
		{ID: "a", X: 0, Y: 0, W: 2, H: 2},
		{ID: "b", X: 0, Y: 5, W: 2, H: 2},
	}}
}

// =============================================================================
// Editing commands
// =============================================================================

func TestCompactCommand(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	path := env.write(t, "home.json", twoItems())

	if err := env.run("compact", path, "-q"); err != nil {
		t.Fatalf("compact error = %v", err)
	}
	if got := mustItem(t, readLayout(t, path), "b").Y; got != 2 {
		t.Errorf("b.Y = %d, want 2", got)
	}
}

func TestCompactCommandUnknownCompactor(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	path := env.write(t, "home.json", twoItems())

	err := env.run("compact", path, "--compactor", "diagonal")
	if err == nil {
		t.Fatal("compact --compactor diagonal succeeded, want error")
	}
}

func TestMoveCommand(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	path := env.write(t, "home.json", twoItems())

	if err := env.run("move", path, "b", "4", "0", "-q"); err != nil {
		t.Fatalf("move error = %v", err)
	}
	b := mustItem(t, readLayout(t, path), "b")
	if b.X != 4 || b.Y != 0 {
		t.Errorf("b at %d,%d, want 4,0", b.X, b.Y)
	}
}

func TestMoveCommandErrors(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	path := env.write(t, "home.json", twoItems())

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown item", []string{"move", path, "zz", "1", "1"}, errors.ErrCodeNotFound},
		{"bad x", []string{"move", path, "a", "one", "1"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.run(tt.args...)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestDryRunLeavesFile(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	path := env.write(t, "home.json", twoItems())
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := env.run("compact", path, "--dry-run", "-q"); err != nil {
		t.Fatalf("compact --dry-run error = %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("dry run rewrote the file:\n%s", after)
	}
}

func TestOutputFlag(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	path := env.write(t, "home.json", twoItems())
	out := filepath.Join(env.dir, "home.toml")

	if err := env.run("compact", path, "-o", out, "-q"); err != nil {
		t.Fatalf("compact -o error = %v", err)
	}
	if got := mustItem(t, readLayout(t, out), "b").Y; got != 2 {
		t.Errorf("b.Y in output = %d, want 2", got)
	}
	if got := mustItem(t, readLayout(t, path), "b").Y; got != 5 {
		t.Errorf("b.Y in input = %d, want 5 (untouched)", got)
	}
}

func TestResizeCommand(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	path := env.write(t, "home.json", twoItems())

	if err := env.run("resize", path, "a", "4", "3", "-q"); err != nil {
		t.Fatalf("resize error = %v", err)
	}
	l := readLayout(t, path)
	a := mustItem(t, l, "a")
	if a.W != 4 || a.H != 3 {
		t.Errorf("a is %dx%d, want 4x3", a.W, a.H)
	}
	if got := mustItem(t, l, "b").Y; got != 3 {
		t.Errorf("b.Y = %d, want 3", got)
	}
}

func TestResizeCommandBadHandle(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	path := env.write(t, "home.json", twoItems())

	if err := env.run("resize", path, "a", "4", "3", "--handle", "up"); err == nil {
		t.Error("resize --handle up succeeded, want error")
	}
}

func TestAddAndRemoveCommands(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	path := env.write(t, "home.json", twoItems())

	if err := env.run("add", path, "--id", "c", "--w", "3", "-q"); err != nil {
		t.Fatalf("add error = %v", err)
	}
	c := mustItem(t, readLayout(t, path), "c")
	if c.X != 2 || c.Y != 0 || c.W != 3 {
		t.Errorf("c = %+v, want 3 wide at 2,0", c)
	}

	if err := env.run("remove", path, "a", "-q"); err != nil {
		t.Fatalf("remove error = %v", err)
	}
	l := readLayout(t, path)
	if _, ok := l.Item("a"); ok {
		t.Error("a still present after remove")
	}
	if got := mustItem(t, l, "b").Y; got != 0 {
		t.Errorf("b.Y = %d, want 0 after the gap closed", got)
	}
}

func TestReflowCommandCols(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	doc := layoutio.Document{Layout: grid.Layout{{ID: "wide", X: 8, Y: 0, W: 4, H: 1}}}
	path := env.write(t, "home.json", doc)

	if err := env.run("reflow", path, "--cols", "6", "-q"); err != nil {
		t.Fatalf("reflow error = %v", err)
	}
	got, err := layoutio.Import(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cols != 6 {
		t.Errorf("Cols = %d, want 6", got.Cols)
	}
	if it := mustItem(t, got.Layout, "wide"); it.Right() > 6 {
		t.Errorf("wide = %+v, want inside 6 columns", it)
	}
}

func TestApplyCommand(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	path := env.write(t, "home.json", twoItems())
	cmds := filepath.Join(env.dir, "cmds.jsonl")
	script := `# drag b next to a, then add c
{"type": "move", "id": "b", "x": 2, "y": 0}

{"type": "add", "item": {"id": "c", "x": -1, "y": -1, "w": 2, "h": 1}}
`
	if err := os.WriteFile(cmds, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := env.run("apply", path, cmds, "-q"); err != nil {
		t.Fatalf("apply error = %v", err)
	}
	l := readLayout(t, path)
	if b := mustItem(t, l, "b"); b.X != 2 || b.Y != 0 {
		t.Errorf("b at %d,%d, want 2,0", b.X, b.Y)
	}
	if c := mustItem(t, l, "c"); c.X != 4 || c.Y != 0 {
		t.Errorf("c at %d,%d, want 4,0", c.X, c.Y)
	}
}

func TestReadCommands(t *testing.T) {
	in := strings.NewReader("{\"type\": \"compact\"}\n{\"type\": \"spin\"}\n")
	_, err := readCommands(in, "-")
	if got := errors.GetCode(err); got != errors.ErrCodeInvalidCommand {
		t.Fatalf("code = %v, want %v (err %v)", got, errors.ErrCodeInvalidCommand, err)
	}
	if !strings.Contains(err.Error(), "-:2:") {
		t.Errorf("error = %q, want the line number", err)
	}

	cmds, err := readCommands(strings.NewReader("\n{\"type\": \"reflow\"}\n"), "-")
	if err != nil || len(cmds) != 1 {
		t.Errorf("readCommands() = %v, %v, want one command", cmds, err)
	}
}

// =============================================================================
// Inspection commands
// =============================================================================

func TestValidateCommand(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	good := env.write(t, "good.json", twoItems())
	bad := env.write(t, "bad.json", layoutio.Document{Layout: grid.Layout{
		{ID: "a", X: 0, Y: 0, W: 2, H: 2},
		{ID: "a", X: 4, Y: 0, W: 2, H: 2},
	}})

	if err := env.run("validate", good); err != nil {
		t.Errorf("validate good error = %v", err)
	}
	if err := env.run("validate", bad); err == nil {
		t.Error("validate bad succeeded, want error")
	}
}

func TestPlacementIssues(t *testing.T) {
	tests := []struct {
		name         string
		layout       grid.Layout
		allowOverlap bool
		wantIssues   int
	}{
		{
			name:   "clean",
			layout: grid.Layout{{ID: "a", W: 2, H: 2}, {ID: "b", X: 2, W: 2, H: 2}},
		},
		{
			name:       "overlap",
			layout:     grid.Layout{{ID: "a", W: 2, H: 2}, {ID: "b", X: 1, Y: 1, W: 2, H: 2}},
			wantIssues: 1,
		},
		{
			name:         "overlap allowed",
			layout:       grid.Layout{{ID: "a", W: 2, H: 2}, {ID: "b", X: 1, Y: 1, W: 2, H: 2}},
			allowOverlap: true,
		},
		{
			name:       "past the last column",
			layout:     grid.Layout{{ID: "a", X: 11, W: 2, H: 1}},
			wantIssues: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := placementIssues(tt.layout, 12, tt.allowOverlap)
			if got := len(errors.Issues(err)); got != tt.wantIssues {
				t.Errorf("issues = %d, want %d (err %v)", got, tt.wantIssues, err)
			}
		})
	}
}

func TestReportIssues(t *testing.T) {
	plain := errors.New(errors.ErrCodeNotFound, "gone")
	if got := reportIssues(plain); got != plain {
		t.Errorf("reportIssues(plain) = %v, want it unchanged", got)
	}

	v := errors.NewValidator(errors.ErrCodeInvalidLayout)
	v.Addf("layout[0]", "first")
	v.Addf("layout[1]", "second")
	err := reportIssues(v.Err())
	if got := errors.UserMessage(err); !strings.Contains(got, "2 issue(s)") {
		t.Errorf("reportIssues() = %q, want a count", got)
	}
	if got := errors.GetCode(err); got != errors.ErrCodeInvalidLayout {
		t.Errorf("code = %v, want %v", got, errors.ErrCodeInvalidLayout)
	}
}

const breakpointConfig = gridConfig + `
[breakpoints.lg]
width = 1200
cols = 12

[breakpoints.sm]
width = 0
cols = 6

[responsive]
strategy = "derive"
`

func TestBreakpointCommandWrite(t *testing.T) {
	env := newTestEnv(t, breakpointConfig)
	path := env.write(t, "home.json", layoutio.Document{Layout: grid.Layout{
		{ID: "a", X: 0, Y: 0, W: 4, H: 1},
		{ID: "b", X: 8, Y: 0, W: 4, H: 1},
	}})

	if err := env.run("breakpoint", "500", path, "--write"); err != nil {
		t.Fatalf("breakpoint error = %v", err)
	}
	doc, err := layoutio.Import(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Breakpoints(); !slices.Equal(got, []string{"lg", "sm"}) {
		t.Fatalf("Breakpoints() = %v, want [lg sm]", got)
	}
	for _, it := range doc.Layouts["sm"] {
		if it.Right() > 6 {
			t.Errorf("sm item %+v extends past 6 columns", it)
		}
	}
}

func TestBreakpointCommandBadWidth(t *testing.T) {
	env := newTestEnv(t, breakpointConfig)
	if err := env.run("breakpoint", "wide"); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("err = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestRenderCommand(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	path := env.write(t, "home.json", twoItems())

	if err := env.run("render", path); err != nil {
		t.Fatalf("render error = %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(env.dir, "home.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("output is not SVG: %.80s", svg)
	}
}

// =============================================================================
// Store commands
// =============================================================================

func TestStoreSaveLoad(t *testing.T) {
	env := newTestEnv(t, gridConfig)
	path := env.write(t, "home.json", twoItems())
	out := filepath.Join(env.dir, "restored.json")

	if err := env.run("store", "save", path); err != nil {
		t.Fatalf("store save error = %v", err)
	}
	if err := env.run("store", "list"); err != nil {
		t.Fatalf("store list error = %v", err)
	}
	if err := env.run("store", "load", "home", "-o", out); err != nil {
		t.Fatalf("store load error = %v", err)
	}
	if got, want := readLayout(t, out), twoItems().Layout; !got.Equal(want) {
		t.Errorf("restored layout = %v, want %v", got, want)
	}

	if err := env.run("store", "delete", "home"); err != nil {
		t.Fatalf("store delete error = %v", err)
	}
	err := env.run("store", "load", "home", "-o", out)
	if got := errors.GetCode(err); got != errors.ErrCodeNotFound {
		t.Errorf("load after delete code = %v, want %v", got, errors.ErrCodeNotFound)
	}
}

// =============================================================================
// Helpers
// =============================================================================

func TestChangedItems(t *testing.T) {
	before := grid.Layout{{ID: "a", W: 1, H: 1}, {ID: "b", Y: 1, W: 1, H: 1}, {ID: "c", Y: 2, W: 1, H: 1}}
	after := grid.Layout{{ID: "a", W: 1, H: 1}, {ID: "b", W: 2, H: 1}, {ID: "d", Y: 3, W: 1, H: 1}}

	got := changedItems(before, after)
	if want := []string{"b", "d", "c"}; !slices.Equal(got, want) {
		t.Errorf("changedItems() = %v, want %v", got, want)
	}
}

func TestNewIDs(t *testing.T) {
	before := grid.Layout{{ID: "a"}}
	after := grid.Layout{{ID: "a"}, {ID: "x"}}
	if got := newIDs(before, after); !slices.Equal(got, []string{"x"}) {
		t.Errorf("newIDs() = %v, want [x]", got)
	}
}

func TestIntArgs(t *testing.T) {
	got, err := intArgs([]string{"3", "-1"}, "x", "y")
	if err != nil || !slices.Equal(got, []int{3, -1}) {
		t.Errorf("intArgs() = %v, %v, want [3 -1]", got, err)
	}

	_, err = intArgs([]string{"3", "two"}, "w", "h")
	if msg := errors.UserMessage(err); !strings.Contains(msg, `h must be an integer, got "two"`) {
		t.Errorf("intArgs() error = %q", msg)
	}
}

func TestSnapshotName(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"layouts/home.json"}, "home"},
		{[]string{"home.toml"}, "home"},
		{[]string{"home.json", "dashboard"}, "dashboard"},
	}
	for _, tt := range tests {
		if got := snapshotName(tt.args); got != tt.want {
			t.Errorf("snapshotName(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	c := New(&bytes.Buffer{}, LogInfo)

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Grid.Cols != 12 {
		t.Errorf("Grid.Cols = %d, want 12", cfg.Grid.Cols)
	}
}
