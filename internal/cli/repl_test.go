package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) record(name string, args ...string) error {
	if len(args) > 0 {
		name = fmt.Sprintf("%s %s", name, strings.Join(args, " "))
	}
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) isLoggedIn() bool                 { return s.loggedIn }
func (s *stubExec) Login(ctx context.Context) error  { return s.record("login") }
func (s *stubExec) Logout(ctx context.Context) error { return s.record("logout") }
func (s *stubExec) WhoAmI(ctx context.Context) error { return s.record("whoami") }
func (s *stubExec) Submit(ctx context.Context) error { return s.record("submit") }
func (s *stubExec) Draft(ctx context.Context) error  { return s.record("draft") }
func (s *stubExec) List(ctx context.Context) error   { return s.record("list") }

func (s *stubExec) Reviewers(ctx context.Context, args []string) error {
	return s.record("reviewers", args...)
}

func (s *stubExec) Enroll(ctx context.Context, args []string) error {
	return s.record("enroll", args...)
}

func (s *stubExec) Show(ctx context.Context, args []string) error {
	return s.record("show", args...)
}

func (s *stubExec) Review(ctx context.Context, args []string) error {
	return s.record("review", args...)
}

func runScript(t *testing.T, stub *stubExec, script string) string {
	t.Helper()
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(script))
	runREPL(context.Background(), stub, func() string { return "" }, reader, &out)
	return out.String()
}

func TestREPL_DispatchesCommands(t *testing.T) {
	stub := &stubExec{loggedIn: true}

	runScript(t, stub, "login\nwhoami\nlist\nshow abc123\nreview abc123\nenroll cs SUP100\nlogout\nexit\n")

	assert.Equal(t, []string{
		"login", "whoami", "list", "show abc123", "review abc123", "enroll cs SUP100", "logout",
	}, stub.calls)
}

func TestREPL_ExitStopsLoop(t *testing.T) {
	stub := &stubExec{}

	out := runScript(t, stub, "exit\nlogin\n")

	assert.Empty(t, stub.calls)
	assert.Contains(t, out, "Bye!")
}

func TestREPL_UnknownCommandIsReported(t *testing.T) {
	stub := &stubExec{}

	out := runScript(t, stub, "frobnicate\n")

	assert.Contains(t, out, "Unknown command: frobnicate")
	assert.Empty(t, stub.calls)
}

func TestREPL_HelpDependsOnLoginState(t *testing.T) {
	out := runScript(t, &stubExec{loggedIn: false}, "help\n")
	assert.Contains(t, out, "login, exit")

	out = runScript(t, &stubExec{loggedIn: true}, "help\n")
	assert.Contains(t, out, "submit")
	assert.Contains(t, out, "review")
}

// promptingExec answers its login prompt from the same reader the loop reads
// commands from.
type promptingExec struct {
	stubExec
	reader *bufio.Reader
	answer string
}

func (p *promptingExec) Login(ctx context.Context) error {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		return err
	}
	p.answer = strings.TrimSpace(line)
	return p.record("login")
}

func TestREPL_PromptAnswersShareTheCommandReader(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("login\nBIT230001\nwhoami\n"))
	stub := &promptingExec{reader: reader}

	runREPL(context.Background(), stub, func() string { return "" }, reader, &out)

	assert.Equal(t, "BIT230001", stub.answer)
	assert.Equal(t, []string{"login", "whoami"}, stub.calls)
}

func TestREPL_FinalLineWithoutNewlineIsDispatched(t *testing.T) {
	stub := &stubExec{}

	runScript(t, stub, "list\nwhoami")

	assert.Equal(t, []string{"list", "whoami"}, stub.calls)
}

func TestREPL_BlankLinesAreIgnored(t *testing.T) {
	stub := &stubExec{}

	runScript(t, stub, "\n\n  \nlist\n")

	assert.Equal(t, []string{"list"}, stub.calls)
}
