package connector

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// Process is one spawned MCP server child. It owns the stdin write-end, a
// pump goroutine draining stdout into a line channel, and a bounded tail of
// recent stderr output for diagnostics.
//
// A Process is exclusively owned by the Connector (or Client) that spawned
// it; it is not shared between facades.
type Process struct {
	cfg   ServiceConfig
	cmd   *exec.Cmd
	stdin io.WriteCloser

	// lines receives complete stdout lines in arrival order and is closed
	// when the child closes stdout. Buffered so a slow reader does not
	// block the pump on short bursts.
	lines chan string

	stderr *lineTail

	// done is closed once the child has been reaped; cmd.ProcessState is
	// valid only after that.
	done chan struct{}

	// quit is closed by Terminate so a pump blocked on a full lines
	// channel can never hold up reaping; teardown must not depend on a
	// reader draining the backlog.
	quit chan struct{}

	terminateGrace time.Duration

	mu sync.Mutex // serializes Terminate
}

// SpawnOption configures a spawned process.
type SpawnOption func(*spawnOptions)

type spawnOptions struct {
	terminateGrace time.Duration
	stderrTail     int
}

func resolveSpawnOptions(opts []SpawnOption) spawnOptions {
	o := spawnOptions{
		terminateGrace: DefaultTerminateGrace,
		stderrTail:     DefaultStderrTailLines,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithTerminateGrace sets how long Terminate waits after SIGTERM before
// force-killing the child.
func WithTerminateGrace(d time.Duration) SpawnOption {
	return func(o *spawnOptions) { o.terminateGrace = d }
}

// WithStderrTail sets how many recent stderr lines are retained.
func WithStderrTail(n int) SpawnOption {
	return func(o *spawnOptions) { o.stderrTail = n }
}

// Spawn launches the configured command with the current environment plus
// cfg.Env overlaid, wires the three pipes, and starts the stdout/stderr
// pumps. The child exists after a nil return; on error no process exists
// and the error wraps ErrSpawnFailed.
func Spawn(cfg ServiceConfig, opts ...SpawnOption) (*Process, error) {
	o := resolveSpawnOptions(opts)

	cmd := exec.Command(cfg.Command, cfg.Args...)
	cmd.Env = overlayEnv(os.Environ(), cfg.Env)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: stdin pipe: %v", ErrSpawnFailed, cfg.Command, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		_ = stdin.Close()
		return nil, fmt.Errorf("%w: %s: stdout pipe: %v", ErrSpawnFailed, cfg.Command, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		_ = stdin.Close()
		_ = stdout.Close()
		return nil, fmt.Errorf("%w: %s: stderr pipe: %v", ErrSpawnFailed, cfg.Command, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSpawnFailed, cfg.Command, err)
	}

	p := &Process{
		cfg:            cfg,
		cmd:            cmd,
		stdin:          stdin,
		lines:          make(chan string, 16),
		stderr:         newLineTail(o.stderrTail),
		done:           make(chan struct{}),
		quit:           make(chan struct{}),
		terminateGrace: o.terminateGrace,
	}

	// The pumps must drain the pipes before cmd.Wait is called, since Wait
	// closes them.
	var pumps sync.WaitGroup
	pumps.Add(2)
	go p.pumpStdout(stdout, &pumps)
	go p.pumpStderr(stderr, &pumps)
	go p.reap(&pumps)

	return p, nil
}

// overlayEnv copies base and appends overlay entries, letting the overlay
// win for duplicate keys (later entries take precedence in exec).
func overlayEnv(base []string, overlay map[string]string) []string {
	env := make([]string, len(base), len(base)+len(overlay))
	copy(env, base)
	for k, v := range overlay {
		env = append(env, k+"="+v)
	}
	return env
}

func (p *Process) pumpStdout(r io.Reader, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(p.lines)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		select {
		case p.lines <- scanner.Text():
		case <-p.quit:
			return
		}
	}
}

func (p *Process) pumpStderr(r io.Reader, wg *sync.WaitGroup) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		p.stderr.Append(scanner.Text())
	}
}

// reap waits for the pipes to drain and then collects the child's exit
// status. During Terminate the pumps are abandoned instead of awaited:
// cmd.Wait closes the pipe read ends, which unblocks any pump still
// reading, and a pump parked on a full lines channel exits via quit.
func (p *Process) reap(pumps *sync.WaitGroup) {
	drained := make(chan struct{})
	go func() {
		pumps.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-p.quit:
	}
	_ = p.cmd.Wait()
	close(p.done)
}

// Alive reports whether the child has not yet been reaped. Non-blocking.
func (p *Process) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// ExitCode returns the child's exit code, or -1 while it is still running
// (and for children killed by a signal).
func (p *Process) ExitCode() int {
	select {
	case <-p.done:
		return p.cmd.ProcessState.ExitCode()
	default:
		return -1
	}
}

// Pid returns the OS process id of the child.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Name returns the service name the process was spawned for.
func (p *Process) Name() string {
	return p.cfg.Name
}

// StderrTail returns the most recent stderr lines, oldest first.
func (p *Process) StderrTail() []string {
	return p.stderr.Lines()
}

// Terminate stops the child: stdin is closed (most MCP servers exit on
// EOF), SIGTERM is sent, and after the grace window the child is killed
// outright. Terminate is idempotent; it returns nil once the process is
// confirmed dead.
func (p *Process) Terminate() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	default:
	}

	close(p.quit)
	_ = p.stdin.Close()
	_ = p.cmd.Process.Signal(syscall.SIGTERM)

	select {
	case <-p.done:
	case <-time.After(p.terminateGrace):
		_ = p.cmd.Process.Kill()
		<-p.done
	}
	return nil
}

// writeLine appends a newline to data and writes it to the child's stdin.
func (p *Process) writeLine(data []byte) error {
	if !p.Alive() {
		return fmt.Errorf("%w: %s", ErrServerNotRunning, p.cfg.Name)
	}
	if _, err := p.stdin.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("connector: write to %s: %w", p.cfg.Name, err)
	}
	return nil
}

// readLine returns the next complete stdout line, waiting up to timeout.
// A closed stdout and an elapsed deadline both map to ErrNoResponse: in
// either case no usable line was produced.
func (p *Process) readLine(ctx context.Context, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case line, ok := <-p.lines:
		if !ok {
			return "", fmt.Errorf("%w: %s closed stdout", ErrNoResponse, p.cfg.Name)
		}
		return line, nil
	case <-timer.C:
		return "", fmt.Errorf("%w: %s produced no line within %s", ErrNoResponse, p.cfg.Name, timeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// lineTail is a bounded ring of recent lines.
type lineTail struct {
	mu    sync.Mutex
	lines []string
	max   int
}

func newLineTail(max int) *lineTail {
	if max <= 0 {
		max = 1
	}
	return &lineTail{max: max}
}

func (t *lineTail) Append(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if len(t.lines) > t.max {
		t.lines = t.lines[len(t.lines)-t.max:]
	}
}

func (t *lineTail) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}
