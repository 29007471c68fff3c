// pkg/discovery/transcript.go

package discovery

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	attemptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// Transcript is the human-readable run record. It owns stdout; operational
// zap logs go to stderr and the log file. Reading the transcript is the only
// way to learn of a failure — there is no exit-code signal.
type Transcript struct {
	w io.Writer
}

func NewTranscript(w io.Writer) *Transcript {
	return &Transcript{w: w}
}

// Header opens a step section, tagged with its technique identifier.
func (t *Transcript) Header(technique, title string) {
	fmt.Fprintln(t.w)
	fmt.Fprintln(t.w, headerStyle.Render(fmt.Sprintf("=== [%s] %s ===", technique, title)))
}

func (t *Transcript) Success(format string, args ...any) {
	fmt.Fprintln(t.w, successStyle.Render("[+] "+fmt.Sprintf(format, args...)))
}

// Attempt narrates in-progress and fallback activity.
func (t *Transcript) Attempt(format string, args ...any) {
	fmt.Fprintln(t.w, attemptStyle.Render("[*] "+fmt.Sprintf(format, args...)))
}

func (t *Transcript) Failure(format string, args ...any) {
	fmt.Fprintln(t.w, failureStyle.Render("[-] "+fmt.Sprintf(format, args...)))
}

// Output writes captured command output, indented under the current section.
func (t *Transcript) Output(out string) {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return
	}
	for _, line := range strings.Split(out, "\n") {
		fmt.Fprintln(t.w, "    "+line)
	}
}

func (t *Transcript) Banner(msg string) {
	fmt.Fprintln(t.w)
	fmt.Fprintln(t.w, bannerStyle.Render(msg))
}
