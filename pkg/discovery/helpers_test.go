package discovery

import (
	"bytes"
	"context"
	"strings"
	"testing"

	cerr "github.com/cockroachdb/errors"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/platform"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/tools"
)

// fakeHost simulates PATH lookups and command executions.
type fakeHost struct {
	present map[string]bool
	exits   map[string]int // keyed on full command line; default 0
	ran     []string
}

func (h *fakeHost) probe(name string) bool {
	return h.present[name]
}

func (h *fakeHost) run(ctx context.Context, opts execute.Options) (execute.Result, error) {
	line := strings.TrimSpace(opts.Command + " " + strings.Join(opts.Args, " "))
	h.ran = append(h.ran, line)
	if code := h.exits[line]; code != 0 {
		return execute.Result{ExitCode: code}, cerr.Newf("exit status %d", code)
	}
	return execute.Result{Output: "ok\n"}, nil
}

// fakeEnsurer records ensure calls and can flip host presence on install.
type fakeEnsurer struct {
	host    *fakeHost
	succeed map[string]bool // keyed on package name
	calls   []string
}

func (f *fakeEnsurer) Ensure(rc *scout_io.RuntimeContext, tool tools.Tool) bool {
	f.calls = append(f.calls, tool.Package)
	if f.succeed[tool.Package] {
		f.host.present[tool.Command] = true
		return true
	}
	return false
}

func newFakeEnv(id platform.Identity, host *fakeHost, ensurer *fakeEnsurer) (*Env, *bytes.Buffer) {
	if host.present == nil {
		host.present = map[string]bool{}
	}
	var buf bytes.Buffer
	return &Env{
		ID:      id,
		Ensurer: ensurer,
		Probe:   host.probe,
		Run:     host.run,
		T:       NewTranscript(&buf),
	}, &buf
}

func testRC(t *testing.T) *scout_io.RuntimeContext {
	t.Helper()
	return scout_io.NewContext(context.Background(), "test")
}
