package script

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/go-veneer/veneer/pkg/action"
	"github.com/go-veneer/veneer/pkg/errors"
	"github.com/go-veneer/veneer/pkg/store"
)

// strippedGlobals are removed from every interpreter before a script
// runs: filesystem, process, module loading, introspection, and
// gopher-lua's goroutine channels.
var strippedGlobals = []string{
	"os", "io", "debug",
	"load", "loadfile", "loadstring", "dofile",
	"require", "package", "channel",
}

// LuaHandler executes Lua scripts in response to actions. Every
// invocation runs in a fresh interpreter, so scripts cannot accumulate
// hidden state or interfere with each other. Scripts exchange data with
// the runtime exclusively through the store snapshot and the buffered
// output table.
type LuaHandler struct {
	scripts map[string]string
	logw    io.Writer
}

// NewLuaHandler creates a handler from a loaded app configuration.
// The configuration has already validated that every script exists.
func NewLuaHandler(cfg *AppConfig) *LuaHandler {
	scripts := make(map[string]string, len(cfg.scripts))
	for name, path := range cfg.scripts {
		scripts[name] = path
	}
	return &LuaHandler{scripts: scripts, logw: os.Stderr}
}

// NewLuaHandlerFromScripts creates a handler directly from an action
// name to script path mapping, useful when embedding without an
// app.toml. Fails fast if any referenced script is missing.
func NewLuaHandlerFromScripts(scripts map[string]string) (*LuaHandler, error) {
	copied := make(map[string]string, len(scripts))
	for name, path := range scripts {
		if _, err := os.Stat(path); err != nil {
			return nil, &errors.Error{
				Op:     "script.NewLuaHandlerFromScripts",
				Kind:   errors.KindConfig,
				Action: name,
				Err:    fmt.Errorf("script for action %q not found: %s", name, path),
			}
		}
		copied[name] = path
	}
	return &LuaHandler{scripts: copied, logw: os.Stderr}, nil
}

// SetLogWriter redirects script log lines and copy-out warnings,
// which go to stderr by default.
func (h *LuaHandler) SetLogWriter(w io.Writer) {
	h.logw = w
}

// ScriptFor returns the script path registered for an action.
func (h *LuaHandler) ScriptFor(name string) (string, bool) {
	p, ok := h.scripts[name]
	return p, ok
}

// ActionNames returns the registered action names in sorted order.
func (h *LuaHandler) ActionNames() []string {
	names := make([]string, 0, len(h.scripts))
	for name := range h.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handle runs the script registered for the action, if any. Actions
// without a script are not claimed, letting later handlers in the chain
// try. A script failure is reported, written to the store under
// "errors.action.<name>" so the UI can render it, and still claims the
// action: a broken script must neither fall through nor crash the loop.
func (h *LuaHandler) Handle(a *action.Action, st *store.Store, _ *action.Services) (bool, error) {
	path, ok := h.scripts[a.Name]
	if !ok {
		return false, nil
	}

	if err := h.execute(path, a, st); err != nil {
		errors.Report(&errors.Error{
			Op:     "script.LuaHandler.Handle",
			Kind:   errors.KindScript,
			Action: a.Name,
			Err:    err,
		})
		st.SetString("errors.action."+a.Name, fmt.Sprintf("script error: %v", err))
		return true, nil
	}
	return true, nil
}

// execute runs one script in a fresh interpreter. Lifecycle: construct,
// strip capabilities, bind the three primitives, run, discard. Nothing
// escapes the call except the copy-out into the store.
func (h *LuaHandler) execute(path string, a *action.Action, st *store.Store) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	L := lua.NewState()
	defer L.Close()

	for _, g := range strippedGlobals {
		L.SetGlobal(g, lua.LNil)
	}

	// Read-only snapshot of the store, plus the action payload.
	snapshot := L.NewTable()
	for _, key := range st.Keys() {
		v, _ := st.Get(key)
		snapshot.RawSetString(key, toLua(v))
	}
	payload := L.NewTable()
	for key, v := range a.Payload {
		payload.RawSetString(key, toLua(v))
	}

	// Writes are buffered here and applied only after a clean run.
	outputs := L.NewTable()
	var logLines []string

	app := L.NewTable()
	L.SetField(app, "get", L.NewFunction(func(L *lua.LState) int {
		L.Push(snapshot.RawGetString(L.CheckString(1)))
		return 1
	}))
	L.SetField(app, "set", L.NewFunction(func(L *lua.LState) int {
		key := L.CheckString(1)
		outputs.RawSetString(key, L.CheckAny(2))
		return 0
	}))
	L.SetField(app, "log", L.NewFunction(func(L *lua.LState) int {
		logLines = append(logLines, L.CheckString(1))
		return 0
	}))
	L.SetField(app, "payload", payload)
	L.SetGlobal("app", app)

	fn, err := L.Load(bytes.NewReader(src), path)
	if err != nil {
		return fmt.Errorf("failed to compile script: %w", err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("script failed: %w", err)
	}

	// Copy-out: primitive outputs go to the store, anything else is
	// dropped with a warning rather than failing the action.
	outputs.ForEach(func(k, v lua.LValue) {
		key := lua.LVAsString(k)
		switch v := v.(type) {
		case lua.LString:
			st.Set(key, store.String(string(v)))
		case lua.LNumber:
			st.Set(key, store.Number(float64(v)))
		case lua.LBool:
			st.Set(key, store.Bool(bool(v)))
		default:
			fmt.Fprintf(h.logw, "[lua] warning: ignoring non-primitive value for key %q\n", key)
		}
	})

	for _, line := range logLines {
		fmt.Fprintf(h.logw, "[lua] %s\n", line)
	}
	return nil
}

// toLua converts a store value into its Lua equivalent.
func toLua(v store.Value) lua.LValue {
	switch v.Kind() {
	case store.KindString:
		return lua.LString(v.AsString())
	case store.KindNumber:
		return lua.LNumber(v.AsNumber())
	case store.KindBool:
		return lua.LBool(v.AsBool())
	default:
		return lua.LNil
	}
}
