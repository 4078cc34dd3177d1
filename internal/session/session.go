// Package session owns the supervised child process and its pseudo-terminal.
// It exposes a write path for forwarded keystrokes, a channel of raw output
// chunks produced by a dedicated reader goroutine, and terminal resizing.
package session

import (
	"errors"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// Common errors returned by session operations.
var (
	ErrSessionClosed = errors.New("session is closed")
	ErrNoCommand     = errors.New("no command to spawn")
)

// readBufferSize is the size of the pty read buffer per chunk.
const readBufferSize = 4096

// Config holds spawn parameters.
type Config struct {
	// Env is appended to the inherited environment.
	Env []string

	// OutputBuffer is the capacity of the output channel. Default: 64.
	OutputBuffer int
}

// Option configures a session spawn.
type Option func(*Config)

// WithEnv appends environment variables (KEY=VALUE form).
func WithEnv(env []string) Option {
	return func(c *Config) {
		c.Env = append(c.Env, env...)
	}
}

// WithOutputBuffer sets the output channel capacity.
func WithOutputBuffer(n int) Option {
	return func(c *Config) {
		c.OutputBuffer = n
	}
}

// Session is a child process attached to a pseudo-terminal.
type Session struct {
	mu sync.Mutex

	cmd    *exec.Cmd
	ptmx   *os.File
	output chan []byte
	closed bool

	// setSize is injectable for tests; defaults to pty.Setsize.
	setSize func(*os.File, *pty.Winsize) error
}

// Spawn starts command with args in workdir, attached to a pty of the given
// geometry, and begins reading its output. A spawn failure is fatal to
// startup and returned to the caller.
func Spawn(command string, args []string, workdir string, rows, cols int, opts ...Option) (*Session, error) {
	if command == "" {
		return nil, ErrNoCommand
	}

	config := Config{OutputBuffer: 64}
	for _, opt := range opts {
		opt(&config)
	}

	cmd := exec.Command(command, args...)
	cmd.Dir = workdir
	cmd.Env = append(os.Environ(), config.Env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, err
	}

	s := &Session{
		cmd:     cmd,
		ptmx:    ptmx,
		output:  make(chan []byte, config.OutputBuffer),
		setSize: pty.Setsize,
	}

	go s.readLoop()

	return s, nil
}

// Output returns the channel of raw output chunks. The channel is closed
// when the process exits or the pty read path fails; the coordinator treats
// the closed channel as the end of the session.
func (s *Session) Output() <-chan []byte {
	return s.output
}

// Write forwards bytes to the child's terminal input.
func (s *Session) Write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	_, err := s.ptmx.Write(p)
	return err
}

// Resize updates the pty geometry. The child receives SIGWINCH from the
// kernel as a side effect.
func (s *Session) Resize(rows, cols int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return s.setSize(s.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

// Close terminates the child process and releases the pty. Safe to call
// more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	err := s.ptmx.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()
	return err
}

// readLoop pushes output chunks until the pty read path ends. A zero-byte
// read or an error means the process exited or the pty closed; the loop
// ends silently and closes the output channel.
func (s *Session) readLoop() {
	defer close(s.output)

	buf := make([]byte, readBufferSize)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.output <- chunk
		}
		if err != nil || n == 0 {
			return
		}
	}
}
