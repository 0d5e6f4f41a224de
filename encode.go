package sapling

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// FrameSink consumes raw straight-alpha RGBA frames in order. WriteFrame
// may block until the consumer is ready for more — that blocking is the
// backpressure contract: a producer never gets more than one frame ahead of
// what the sink can accept. WriteFrame must not retain the slice; it is
// reused for the next frame.
type FrameSink interface {
	WriteFrame(frame []byte) error
}

// FuncSink adapts a function to a FrameSink.
type FuncSink func(frame []byte) error

// WriteFrame calls f.
func (f FuncSink) WriteFrame(frame []byte) error { return f(frame) }

// WriterSink streams raw frames to an io.Writer.
type WriterSink struct {
	W io.Writer
}

// WriteFrame writes the frame bytes, returning the first write error.
func (s WriterSink) WriteFrame(frame []byte) error {
	_, err := s.W.Write(frame)
	return err
}

// stderrTail is how much encoder stderr is kept for error reporting.
const stderrTail = 4 << 10

// EncoderConfig describes the external encoder process an FFmpegSink
// spawns.
type EncoderConfig struct {
	// Path is the encoder binary, "ffmpeg" by default.
	Path string
	// Args overrides the full argument list. Empty means the default
	// ffmpeg raw-RGBA-to-transparent-WebM arguments for the frame
	// geometry given to NewFFmpegSink.
	Args []string
}

// FFmpegSink pipes raw frames into an external encoder process's stdin.
// Pipe writes block when the process's input buffer is full, which is
// exactly the backpressure the frame producer must honor. The sink
// distinguishes spawn failure (NewFFmpegSink error) from abnormal exit
// (Close error carrying the exit status and a stderr tail).
type FFmpegSink struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	g     *errgroup.Group

	stderrBuf bytes.Buffer // tail only; written by the errgroup goroutine
	closed    bool
}

// NewFFmpegSink spawns the encoder for a width x height, fps stream writing
// to outPath. A zero cfg uses ffmpeg with arguments that consume raw RGBA
// frames on stdin and produce a transparent-background WebM.
//
// The context covers the whole encode: cancelling it kills the process,
// which surfaces as a write or Close error.
func NewFFmpegSink(ctx context.Context, cfg EncoderConfig, width, height, fps int, outPath string) (*FFmpegSink, error) {
	path := cfg.Path
	if path == "" {
		path = "ffmpeg"
	}
	args := cfg.Args
	if len(args) == 0 {
		args = defaultEncoderArgs(width, height, fps, outPath)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("encoder %s: stdin: %w", path, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("encoder %s: stderr: %w", path, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("encoder %s: spawn: %w", path, err)
	}

	s := &FFmpegSink{cmd: cmd, stdin: stdin}
	s.g = &errgroup.Group{}
	s.g.Go(func() error {
		// Keep only the tail; encoder chatter can be long.
		_, err := io.Copy(tailWriter{&s.stderrBuf}, stderr)
		return err
	})
	return s, nil
}

// defaultEncoderArgs builds the ffmpeg invocation for a raw RGBA stream in
// and an alpha-capable VP9 WebM out.
func defaultEncoderArgs(width, height, fps int, outPath string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", strconv.Itoa(width) + "x" + strconv.Itoa(height),
		"-r", strconv.Itoa(fps),
		"-i", "-",
		"-c:v", "libvpx-vp9",
		"-pix_fmt", "yuva420p",
		"-auto-alt-ref", "0",
		"-y", outPath,
	}
}

// WriteFrame pushes one frame into the encoder's stdin, blocking until the
// pipe accepts it. A write error (the encoder died or closed its input)
// aborts the stream.
func (s *FFmpegSink) WriteFrame(frame []byte) error {
	if _, err := s.stdin.Write(frame); err != nil {
		return fmt.Errorf("encoder: write frame: %w", err)
	}
	return nil
}

// Close signals end of stream and waits for the encoder to finish. A
// non-zero exit is fatal for the request and reported with the tail of the
// encoder's stderr. Close is idempotent.
func (s *FFmpegSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	errClose := s.stdin.Close()
	errCopy := s.g.Wait()
	if err := s.cmd.Wait(); err != nil {
		msg := bytes.TrimSpace(s.stderrBuf.Bytes())
		if len(msg) > 0 {
			return fmt.Errorf("encoder: %w: %s", err, msg)
		}
		return fmt.Errorf("encoder: %w", err)
	}
	if errClose != nil {
		return fmt.Errorf("encoder: close stdin: %w", errClose)
	}
	return errCopy
}

// tailWriter keeps only the last stderrTail bytes written.
type tailWriter struct {
	buf *bytes.Buffer
}

func (t tailWriter) Write(p []byte) (int, error) {
	t.buf.Write(p)
	if over := t.buf.Len() - stderrTail; over > 0 {
		t.buf.Next(over)
	}
	return len(p), nil
}
