package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var (
	day1 = time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)
	day2 = time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)
)

type cliTestEnv struct {
	root   string
	dbPath string
}

func setupCLITestEnv(t *testing.T) cliTestEnv {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "photos")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, mod := range map[string]time.Time{"a.png": day2, "b.png": day2, "c.mp4": day1, "notes.txt": day1} {
		p := filepath.Join(root, name)
		if err := os.WriteFile(p, []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(p, mod, mod); err != nil {
			t.Fatal(err)
		}
	}
	return cliTestEnv{root: root, dbPath: filepath.Join(dir, "meta.db")}
}

func runCLI(t *testing.T, env cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--dir", env.root, "--db", env.dbPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func listJSON(t *testing.T, env cliTestEnv, args ...string) []groupJSON {
	t.Helper()
	out, _, err := runCLI(t, env, append([]string{"list", "--json"}, args...)...)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var groups []groupJSON
	if err := json.Unmarshal([]byte(out), &groups); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	return groups
}

func TestListJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	groups := listJSON(t, env, "--sort", "date-desc")
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups[0].Items) != 2 || groups[0].Items[0].ID != "/photos/a.png" || groups[0].Items[1].ID != "/photos/b.png" {
		t.Errorf("first group = %+v", groups[0])
	}
	if len(groups[1].Items) != 1 || groups[1].Items[0].ID != "/photos/c.mp4" {
		t.Errorf("second group = %+v", groups[1])
	}

	videos := listJSON(t, env, "--types", "mp4")
	if len(videos) != 1 || videos[0].Title != "C" {
		t.Errorf("mp4 listing = %+v", videos)
	}
}

func TestListTableAndTree(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "/photos/a.png")
	requireContains(t, out, "Modified")
	if strings.Contains(out, "notes.txt") {
		t.Errorf("non-media file listed:\n%s", out)
	}

	out, _, err = runCLI(t, env, "list", "--tree", "--sort", "date-asc")
	if err != nil {
		t.Fatalf("list --tree: %v", err)
	}
	requireContains(t, out, env.root)
	requireContains(t, out, "2023-01-01")
	requireContains(t, out, "/photos/c.mp4")
}

func TestListRejectsBadFlags(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "list", "--sort", "size"); err == nil {
		t.Error("expected error for unknown sort order")
	}
	if _, _, err := runCLI(t, env, "list", "--types", "audio"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestAddShowTouchRemove(t *testing.T) {
	env := setupCLITestEnv(t)

	src := filepath.Join(t.TempDir(), "holiday.jpg")
	if err := os.WriteFile(src, []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(src, day1, day1); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, env, "add", src, "--title", "Holiday", "--tags", "Trip, beach")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Added /photos/holiday.jpg")

	if _, _, err := runCLI(t, env, "add", src); err == nil {
		t.Error("expected second add to fail")
	}

	out, _, err = runCLI(t, env, "show", "/photos/holiday.jpg", "--json")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var item itemJSON
	if err := json.Unmarshal([]byte(out), &item); err != nil {
		t.Fatalf("decode show output: %v", err)
	}
	if item.Title != "Holiday" || item.Tags != "trip,beach" || !item.Date.Equal(day1) {
		t.Errorf("show = %+v", item)
	}

	out, _, err = runCLI(t, env, "show", "/photos/holiday.jpg")
	if err != nil {
		t.Fatalf("show table: %v", err)
	}
	requireContains(t, out, "image/jpeg")
	requireContains(t, out, "4 B")

	if _, _, err := runCLI(t, env, "touch", "/photos/holiday.jpg", "--date", "2024-03-04T05:06:07Z"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	info, err := os.Stat(filepath.Join(env.root, "holiday.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC); !info.ModTime().Equal(want) {
		t.Errorf("mtime = %v, want %v", info.ModTime(), want)
	}

	out, _, err = runCLI(t, env, "rm", "/photos/holiday.jpg")
	if err != nil {
		t.Fatalf("rm: %v", err)
	}
	requireContains(t, out, "Removed /photos/holiday.jpg")
	if _, err := os.Stat(filepath.Join(env.root, "holiday.jpg")); !os.IsNotExist(err) {
		t.Errorf("file still present: %v", err)
	}

	if _, _, err := runCLI(t, env, "show", "/photos/holiday.jpg"); err == nil {
		t.Error("expected show of removed item to fail")
	}
}

func TestTouchTagsFilterListing(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "touch", "/photos/b.png", "--date", "2023-01-02", "--tags", "keep"); err != nil {
		t.Fatalf("touch: %v", err)
	}

	groups := listJSON(t, env, "--tags", "keep")
	if len(groups) != 1 || len(groups[0].Items) != 1 || groups[0].Items[0].ID != "/photos/b.png" {
		t.Errorf("tag listing = %+v", groups)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-01-02T03:04:05Z", want: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{in: "2024-01-02", want: time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)},
		{in: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	before := time.Now()
	got, err := parseDate("now")
	if err != nil || got.Before(before) {
		t.Errorf("parseDate(now) = %v, %v", got, err)
	}
}

func TestRenderTableNonTTY(t *testing.T) {
	var buf bytes.Buffer
	out := renderTable(&buf, []string{"Size", "Modified"}, [][]string{{"1"}, {"2", "3"}}, []columnAlignment{alignLeft, alignRight})
	requireContains(t, out, "Size")
	requireContains(t, out, "Modified")
	requireContains(t, out, "3")
	if renderTable(&buf, nil, nil, nil) != "" {
		t.Error("expected empty output without headers")
	}
}
