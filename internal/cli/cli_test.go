package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"workshop-planner/internal/logging"
	"workshop-planner/internal/store"
)

func runCLI(t *testing.T, args ...string) (map[string]any, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()

	var env map[string]any
	if outBuf.Len() > 0 {
		if jerr := json.Unmarshal(outBuf.Bytes(), &env); jerr != nil {
			t.Fatalf("decode output of %v: %v\n%s", args, jerr, outBuf.String())
		}
	}
	return env, errBuf.String(), err
}

// mustRun runs the command against an isolated data dir and returns "data".
func mustRun(t *testing.T, dir string, args ...string) any {
	t.Helper()
	env, stderr, err := runCLI(t, append([]string{"--dir", dir}, args...)...)
	if err != nil {
		t.Fatalf("%v: %v\nstderr: %s", args, err, stderr)
	}
	return env["data"]
}

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("PLANNER_CONFIG_DIR", t.TempDir())
	t.Setenv("PLANNER_FORMAT", "")
	return t.TempDir()
}

func obj(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object; got %T", v)
	}
	return m
}

func arr(t *testing.T, v any) []any {
	t.Helper()
	a, ok := v.([]any)
	if !ok {
		t.Fatalf("expected array; got %T", v)
	}
	return a
}

func TestWorkshops_CreateListShow(t *testing.T) {
	dir := isolate(t)

	w := obj(t, mustRun(t, dir, "workshops", "create", "Offsite", "--client", "Acme"))
	id, _ := w["id"].(string)
	if id == "" || w["name"] != "Offsite" || w["clientName"] != "Acme" {
		t.Fatalf("unexpected created workshop: %v", w)
	}
	days := arr(t, w["days"])
	if len(days) != 1 || obj(t, days[0])["startTime"] != "09:00" {
		t.Fatalf("expected one 09:00 day; got %v", days)
	}

	list := arr(t, mustRun(t, dir, "workshops", "list"))
	if len(list) != 1 || obj(t, list[0])["id"] != id {
		t.Fatalf("expected the workshop in the list; got %v", list)
	}

	_, stderr, err := runCLI(t, "--dir", dir, "workshops", "show", "nope")
	if err == nil || !strings.Contains(stderr, "workshop not found: nope") {
		t.Fatalf("expected not found; err=%v stderr=%q", err, stderr)
	}
}

func TestWorkshops_CreateFromTemplateHasSchedule(t *testing.T) {
	dir := isolate(t)
	w := obj(t, mustRun(t, dir, "workshops", "create", "--template", "design-sprint"))
	id := w["id"].(string)
	if w["name"] != "Design Sprint 2.0" {
		t.Fatalf("expected template name as default; got %v", w["name"])
	}

	out := obj(t, mustRun(t, dir, "workshops", "show", id, "--schedule"))
	days := arr(t, out["days"])
	if len(days) < 2 {
		t.Fatalf("expected a multi-day workshop; got %d days", len(days))
	}
	d0 := obj(t, days[0])
	items := arr(t, d0["items"])
	if len(items) == 0 {
		t.Fatalf("expected items on day 1")
	}
	first, last := obj(t, items[0]), obj(t, items[len(items)-1])
	if first["start"] != d0["start"] || last["end"] != d0["end"] {
		t.Fatalf("expected items to span the day: day=%v-%v first=%v last=%v", d0["start"], d0["end"], first["start"], last["end"])
	}
}

func TestItems_AddMoveRemove(t *testing.T) {
	dir := isolate(t)
	id := obj(t, mustRun(t, dir, "workshops", "create"))["id"].(string)
	mustRun(t, dir, "days", "add", id)

	coffee := obj(t, mustRun(t, dir, "items", "add", id, "--day", "2", "--library", "Coffee Break"))
	if coffee["title"] != "Coffee Break" || coffee["category"] != "break" {
		t.Fatalf("unexpected library item: %v", coffee)
	}
	intro := obj(t, mustRun(t, dir, "items", "add", id, "--title", "Intro", "--duration", "20"))
	introID := intro["id"].(string)

	moved := obj(t, mustRun(t, dir, "items", "move", id, introID, "--to-day", "2", "--index", "0"))
	if moved["moved"] != true || moved["index"] != float64(0) {
		t.Fatalf("unexpected move result: %v", moved)
	}

	w := obj(t, mustRun(t, dir, "workshops", "show", id))
	days := arr(t, w["days"])
	if n := len(arr(t, obj(t, days[0])["items"])); n != 0 {
		t.Fatalf("expected day 1 empty; got %d", n)
	}
	d2 := arr(t, obj(t, days[1])["items"])
	if len(d2) != 2 || obj(t, d2[0])["id"] != introID {
		t.Fatalf("expected intro first on day 2; got %v", d2)
	}

	mustRun(t, dir, "items", "remove", id, introID)
	w = obj(t, mustRun(t, dir, "workshops", "show", id))
	if n := len(arr(t, obj(t, arr(t, w["days"])[1])["items"])); n != 1 {
		t.Fatalf("expected one item left on day 2; got %d", n)
	}
}

func TestItems_ResizeSnapsAndClamps(t *testing.T) {
	dir := isolate(t)
	id := obj(t, mustRun(t, dir, "workshops", "create"))["id"].(string)
	itemID := obj(t, mustRun(t, dir, "items", "add", id, "--title", "Work", "--duration", "20"))["id"].(string)

	got := obj(t, mustRun(t, dir, "items", "resize", id, itemID, "33"))
	if got["durationMinutes"] != float64(35) || got["changed"] != true {
		t.Fatalf("expected 35 and a commit; got %v", got)
	}
	got = obj(t, mustRun(t, dir, "items", "resize", id, itemID, "36"))
	if got["durationMinutes"] != float64(35) || got["changed"] != false {
		t.Fatalf("expected no commit when the snapped value is unchanged; got %v", got)
	}
	got = obj(t, mustRun(t, dir, "items", "resize", id, itemID, "240", "--max", "60"))
	if got["durationMinutes"] != float64(60) {
		t.Fatalf("expected clamp to 60; got %v", got)
	}
}

func TestDays_RemoveLastDayIsRefused(t *testing.T) {
	dir := isolate(t)
	id := obj(t, mustRun(t, dir, "workshops", "create"))["id"].(string)
	_, stderr, err := runCLI(t, "--dir", dir, "days", "remove", id, "1")
	if err == nil || !strings.Contains(stderr, "last day") {
		t.Fatalf("expected last-day refusal; err=%v stderr=%q", err, stderr)
	}

	mustRun(t, dir, "days", "add", id)
	mustRun(t, dir, "days", "set-start", id, "2", "10:30")
	out := obj(t, mustRun(t, dir, "days", "remove", id, "1"))
	if out["removed"] == "" {
		t.Fatalf("expected a removed id; got %v", out)
	}
	w := obj(t, mustRun(t, dir, "workshops", "show", id))
	days := arr(t, w["days"])
	d := obj(t, days[0])
	if len(days) != 1 || d["startTime"] != "10:30" || d["dateOffset"] != float64(0) {
		t.Fatalf("expected the remaining day renumbered to offset 0; got %v", d)
	}
}

func TestLibrary_ListFilters(t *testing.T) {
	dir := isolate(t)
	all := arr(t, mustRun(t, dir, "library", "list"))
	breaks := arr(t, mustRun(t, dir, "library", "list", "--category", "Break"))
	if len(breaks) == 0 || len(breaks) >= len(all) {
		t.Fatalf("expected a strict subset for the break category; got %d of %d", len(breaks), len(all))
	}
	for _, b := range breaks {
		if obj(t, b)["category"] != "break" {
			t.Fatalf("unexpected category in %v", b)
		}
	}

	_, stderr, err := runCLI(t, "--dir", dir, "library", "list", "--category", "bogus")
	if err == nil || !strings.Contains(stderr, "unknown category") {
		t.Fatalf("expected invalid category error; stderr=%q", stderr)
	}
}

func TestFormat_YAMLAndUnknown(t *testing.T) {
	dir := isolate(t)
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dir", dir, "--format", "yaml", "templates", "list"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("templates list: %v", err)
	}
	if !strings.Contains(out.String(), "design-sprint") || strings.HasPrefix(strings.TrimSpace(out.String()), "{") {
		t.Fatalf("expected yaml output; got %q", out.String())
	}

	_, _, err := runCLI(t, "--dir", dir, "--format", "xml", "templates", "list")
	if err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestPickWorkshop(t *testing.T) {
	ctx := context.Background()
	t.Setenv("PLANNER_CONFIG_DIR", t.TempDir())
	st, err := store.Open(ctx, t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	blank, err := pickWorkshop(ctx, st, "", "")
	if err != nil {
		t.Fatalf("pick on empty store: %v", err)
	}
	if all := st.LoadAll(ctx); len(all) != 1 || all[0].ID != blank.ID {
		t.Fatalf("expected a persisted blank workshop; got %d", len(all))
	}

	again, err := pickWorkshop(ctx, st, "", "stale-id")
	if err != nil || again.ID != blank.ID {
		t.Fatalf("expected a stale remembered id to fall back to the first workshop; got %v %v", again.ID, err)
	}

	_, err = pickWorkshop(ctx, st, "missing", "")
	var nf notFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected notFoundError; got %v", err)
	}
}

func TestDocs_ListAndShow(t *testing.T) {
	dir := isolate(t)
	topics := arr(t, obj(t, mustRun(t, dir, "docs"))["topics"])
	if len(topics) == 0 {
		t.Fatalf("expected topics")
	}
	got := obj(t, mustRun(t, dir, "docs", "editor"))
	if !strings.Contains(got["markdown"].(string), "Drag") {
		t.Fatalf("unexpected editor doc: %v", got)
	}
	if _, _, err := runCLI(t, "--dir", dir, "docs", "nope"); err == nil {
		t.Fatalf("expected unknown topic error")
	}
}

func TestItems_UpdateObjectivesAndOutcomes(t *testing.T) {
	dir := isolate(t)
	id := obj(t, mustRun(t, dir, "workshops", "create"))["id"].(string)
	itemID := obj(t, mustRun(t, dir, "items", "add", id, "--title", "Kickoff", "--duration", "20"))["id"].(string)

	got := obj(t, mustRun(t, dir, "items", "update", id, itemID,
		"--description", "Set the scene",
		"--objective", "Align, then decide", "--objective", "Ship",
		"--outcome", "A plan"))
	d := obj(t, got["description"])
	objectives := arr(t, d["objectives"])
	if d["short"] != "Set the scene" || len(objectives) != 2 || objectives[0] != "Align, then decide" {
		t.Fatalf("unexpected description: %v", d)
	}
	if outcomes := arr(t, d["outcomes"]); len(outcomes) != 1 || outcomes[0] != "A plan" {
		t.Fatalf("unexpected outcomes: %v", d["outcomes"])
	}

	got = obj(t, mustRun(t, dir, "items", "update", id, itemID, "--objective="))
	d = obj(t, got["description"])
	if _, ok := d["objectives"]; ok {
		t.Fatalf("expected objectives cleared; got %v", d)
	}
	if d["short"] != "Set the scene" || len(arr(t, d["outcomes"])) != 1 {
		t.Fatalf("expected the rest of the description kept; got %v", d)
	}
}

func TestRememberWorkshop_LogsConfigFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PLANNER_CONFIG_DIR", filepath.Join(blocker, "sub"))

	var buf bytes.Buffer
	app := &App{log: logging.NewWriter(&buf, "debug", "")}
	app.rememberWorkshop("w1")

	if out := buf.String(); !strings.Contains(out, "remember workshop failed") || !strings.Contains(out, "w1") {
		t.Fatalf("expected a warning naming the workshop; got %q", out)
	}
}
