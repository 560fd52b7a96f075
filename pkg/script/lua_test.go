package script

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-veneer/veneer/pkg/action"
	"github.com/go-veneer/veneer/pkg/errors"
	"github.com/go-veneer/veneer/pkg/store"
)

// quietHandler suppresses error output during tests while recording
// what was reported.
type quietHandler struct {
	reported []*errors.Error
}

func (h *quietHandler) HandleError(err *errors.Error) {
	h.reported = append(h.reported, err)
}

func (h *quietHandler) HandlePanic(err *errors.PanicError) {}

func install(t *testing.T) *quietHandler {
	t.Helper()
	h := &quietHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newHandler(t *testing.T, scripts map[string]string) *LuaHandler {
	t.Helper()
	h, err := NewLuaHandlerFromScripts(scripts)
	if err != nil {
		t.Fatal(err)
	}
	h.SetLogWriter(&bytes.Buffer{})
	return h
}

func TestLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "double.lua", `app.set("outputs.y", 2)`)
	writeScript(t, dir, "reset.lua", `app.set("inputs.x", "")`)

	cfgPath := filepath.Join(dir, "app.toml")
	cfg := `
[app]
name = "Doubler"
version = "1.0"

[actions]
double = "double.lua"
reset = "reset.lua"
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	ac, err := LoadAppConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if ac.Meta.Name != "Doubler" || ac.Meta.Version != "1.0" {
		t.Errorf("meta = %+v", ac.Meta)
	}
	if got := ac.ActionNames(); len(got) != 2 || got[0] != "double" || got[1] != "reset" {
		t.Errorf("ActionNames = %v", got)
	}
	if !ac.HasAction("double") || ac.HasAction("missing") {
		t.Error("HasAction wrong")
	}
	if p, ok := ac.ScriptFor("double"); !ok || !strings.HasSuffix(p, "double.lua") {
		t.Errorf("ScriptFor = %q, %v", p, ok)
	}
	if ac.BaseDir() != dir {
		t.Errorf("BaseDir = %q, want %q", ac.BaseDir(), dir)
	}
}

func TestLoadAppConfigMissingScriptFailsFast(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "app.toml")
	cfg := `
[app]
name = "Broken"

[actions]
gone = "nope.lua"
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(cfgPath)
	if err == nil {
		t.Fatal("missing script did not fail configuration load")
	}
	var verr *errors.Error
	if !stderrors.As(err, &verr) || verr.Kind != errors.KindConfig {
		t.Errorf("error = %v, want KindConfig", err)
	}
}

func TestLoadAppConfigBadTOML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "app.toml")
	if err := os.WriteFile(cfgPath, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(cfgPath); err == nil {
		t.Fatal("malformed toml did not fail")
	}
}

func TestNewLuaHandlerFromScriptsValidates(t *testing.T) {
	_, err := NewLuaHandlerFromScripts(map[string]string{"x": "/no/such/script.lua"})
	if err == nil {
		t.Fatal("missing script accepted")
	}
}

func TestHandleUnknownActionNotClaimed(t *testing.T) {
	h := newHandler(t, map[string]string{})
	claimed, err := h.Handle(action.New("unknown"), store.New(), action.NewServices())
	if err != nil {
		t.Fatal(err)
	}
	if claimed {
		t.Error("handler claimed an action it has no script for")
	}
}

func TestHandleExecutesScript(t *testing.T) {
	install(t)
	dir := t.TempDir()
	path := writeScript(t, dir, "double.lua", `
local x = tonumber(app.get("inputs.x")) or 0
app.set("outputs.y", x * 2)
app.set("outputs.label", "doubled")
app.set("outputs.ready", true)
`)
	h := newHandler(t, map[string]string{"double": path})

	st := store.New()
	st.SetString("inputs.x", "42")

	claimed, err := h.Handle(action.New("double"), st, action.NewServices())
	if err != nil || !claimed {
		t.Fatalf("Handle = %v, %v", claimed, err)
	}

	if v, _ := st.Get("outputs.y"); v.Kind() != store.KindNumber || v.AsNumber() != 84 {
		t.Errorf("outputs.y = %+v, want number 84", v)
	}
	if v, _ := st.Get("outputs.label"); v.Kind() != store.KindString || v.AsString() != "doubled" {
		t.Errorf("outputs.label = %+v, want string doubled", v)
	}
	if v, _ := st.Get("outputs.ready"); v.Kind() != store.KindBool || !v.AsBool() {
		t.Errorf("outputs.ready = %+v, want bool true", v)
	}
}

func TestHandlePayload(t *testing.T) {
	install(t)
	dir := t.TempDir()
	path := writeScript(t, dir, "p.lua", `
app.set("outputs.from_payload", app.payload.factor * 3)
`)
	h := newHandler(t, map[string]string{"p": path})

	st := store.New()
	a := action.New("p").With("factor", store.Number(5))
	if claimed, err := h.Handle(a, st, action.NewServices()); err != nil || !claimed {
		t.Fatalf("Handle = %v, %v", claimed, err)
	}
	if v, _ := st.Get("outputs.from_payload"); v.AsNumber() != 15 {
		t.Errorf("outputs.from_payload = %+v, want 15", v)
	}
}

func TestHandleScriptErrorDowngraded(t *testing.T) {
	reported := install(t)
	dir := t.TempDir()
	bad := writeScript(t, dir, "bad.lua", `error("deliberate failure")`)
	good := writeScript(t, dir, "good.lua", `app.set("outputs.ok", true)`)
	h := newHandler(t, map[string]string{"bad": bad, "good": good})

	st := store.New()
	claimed, err := h.Handle(action.New("bad"), st, action.NewServices())
	if err != nil {
		t.Fatalf("script failure escaped as handler error: %v", err)
	}
	if !claimed {
		t.Error("failed script must still claim the action")
	}
	if diag := st.GetString("errors.action.bad"); !strings.Contains(diag, "script error") {
		t.Errorf("diagnostic = %q, want a script error message", diag)
	}
	if len(reported.reported) != 1 || reported.reported[0].Kind != errors.KindScript {
		t.Errorf("reported = %+v, want one KindScript error", reported.reported)
	}

	// The failure must not poison later dispatches.
	if claimed, err := h.Handle(action.New("good"), st, action.NewServices()); err != nil || !claimed {
		t.Fatalf("dispatch after failure = %v, %v", claimed, err)
	}
	if v, _ := st.Get("outputs.ok"); !v.AsBool() {
		t.Error("dispatch after failure had no effect")
	}
}

func TestSandboxStripsAmbientGlobals(t *testing.T) {
	install(t)
	dir := t.TempDir()
	path := writeScript(t, dir, "escape.lua", `app.set("outputs.home", os.getenv("HOME"))`)
	h := newHandler(t, map[string]string{"escape": path})

	st := store.New()
	claimed, err := h.Handle(action.New("escape"), st, action.NewServices())
	if err != nil || !claimed {
		t.Fatalf("Handle = %v, %v", claimed, err)
	}
	if _, ok := st.Get("outputs.home"); ok {
		t.Error("script reached a stripped global")
	}
	if st.GetString("errors.action.escape") == "" {
		t.Error("sandbox violation produced no diagnostic")
	}
}

func TestOutputsBufferedUntilSuccess(t *testing.T) {
	install(t)
	dir := t.TempDir()
	path := writeScript(t, dir, "partial.lua", `
app.set("outputs.first", 1)
error("fail after first write")
`)
	h := newHandler(t, map[string]string{"partial": path})

	st := store.New()
	if _, err := h.Handle(action.New("partial"), st, action.NewServices()); err != nil {
		t.Fatal(err)
	}
	if _, ok := st.Get("outputs.first"); ok {
		t.Error("buffered write leaked into the store from a failed script")
	}
}

func TestNonPrimitiveOutputDropped(t *testing.T) {
	install(t)
	dir := t.TempDir()
	path := writeScript(t, dir, "table.lua", `
app.set("outputs.t", {1, 2, 3})
app.set("outputs.n", 7)
`)
	h, err := NewLuaHandlerFromScripts(map[string]string{"table": path})
	if err != nil {
		t.Fatal(err)
	}
	var logw bytes.Buffer
	h.SetLogWriter(&logw)

	st := store.New()
	claimed, err := h.Handle(action.New("table"), st, action.NewServices())
	if err != nil || !claimed {
		t.Fatalf("Handle = %v, %v", claimed, err)
	}
	if _, ok := st.Get("outputs.t"); ok {
		t.Error("non-primitive output reached the store")
	}
	if v, _ := st.Get("outputs.n"); v.AsNumber() != 7 {
		t.Error("primitive output alongside a dropped one was lost")
	}
	if !strings.Contains(logw.String(), "non-primitive") {
		t.Errorf("no warning emitted, log = %q", logw.String())
	}
}

func TestLogLinesBuffered(t *testing.T) {
	install(t)
	dir := t.TempDir()
	path := writeScript(t, dir, "log.lua", `
app.log("first")
app.log("second")
`)
	h, err := NewLuaHandlerFromScripts(map[string]string{"log": path})
	if err != nil {
		t.Fatal(err)
	}
	var logw bytes.Buffer
	h.SetLogWriter(&logw)

	if _, err := h.Handle(action.New("log"), store.New(), action.NewServices()); err != nil {
		t.Fatal(err)
	}
	out := logw.String()
	if !strings.Contains(out, "[lua] first") || !strings.Contains(out, "[lua] second") {
		t.Errorf("log output = %q", out)
	}
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Error("log lines out of order")
	}
}

func TestFreshInterpreterPerInvocation(t *testing.T) {
	install(t)
	dir := t.TempDir()
	path := writeScript(t, dir, "counter.lua", `
counter = (counter or 0) + 1
app.set("outputs.count", counter)
`)
	h := newHandler(t, map[string]string{"count": path})

	st := store.New()
	for i := 0; i < 3; i++ {
		if _, err := h.Handle(action.New("count"), st, action.NewServices()); err != nil {
			t.Fatal(err)
		}
	}
	if v, _ := st.Get("outputs.count"); v.AsNumber() != 1 {
		t.Errorf("outputs.count = %v; interpreter state leaked across calls", v.AsNumber())
	}
}

func TestActionNames(t *testing.T) {
	dir := t.TempDir()
	a := writeScript(t, dir, "a.lua", ``)
	b := writeScript(t, dir, "b.lua", ``)
	h := newHandler(t, map[string]string{"zeta": a, "alpha": b})
	got := h.ActionNames()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zeta" {
		t.Errorf("ActionNames = %v, want sorted [alpha zeta]", got)
	}
}
