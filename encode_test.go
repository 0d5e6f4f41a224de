package sapling

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"
)

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := WriterSink{W: &buf}
	if err := sink.WriteFrame([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := sink.WriteFrame([]byte{4}); err != nil {
		t.Fatal(err)
	}
	if got := buf.Bytes(); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("sink wrote %v, want frames concatenated in order", got)
	}
}

func TestFuncSink(t *testing.T) {
	calls := 0
	sink := FuncSink(func([]byte) error { calls++; return nil })
	sink.WriteFrame(nil)
	sink.WriteFrame(nil)
	if calls != 2 {
		t.Errorf("sink called %d times, want 2", calls)
	}
}

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestFFmpegSinkSpawnFailure(t *testing.T) {
	_, err := NewFFmpegSink(context.Background(), EncoderConfig{
		Path: "/nonexistent/encoder-binary",
	}, 4, 4, 1, "out.webm")
	if err == nil {
		t.Fatal("spawn of a nonexistent encoder reported success")
	}
}

func TestFFmpegSinkConsumesFrames(t *testing.T) {
	requireTool(t, "cat")
	s, err := NewFFmpegSink(context.Background(), EncoderConfig{
		Path: "cat", Args: []string{"-"},
	}, 4, 4, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	frame := make([]byte, 4*4*4)
	for i := 0; i < 10; i++ {
		if err := s.WriteFrame(frame); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("clean shutdown reported %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close reported %v, want idempotent nil", err)
	}
}

func TestFFmpegSinkNonZeroExit(t *testing.T) {
	requireTool(t, "sh")
	s, err := NewFFmpegSink(context.Background(), EncoderConfig{
		Path: "sh", Args: []string{"-c", "echo frame stream rejected >&2; exit 3"},
	}, 4, 4, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	err = s.Close()
	if err == nil {
		t.Fatal("non-zero encoder exit reported as success")
	}
	if !strings.Contains(err.Error(), "frame stream rejected") {
		t.Errorf("error %q does not carry the encoder's stderr", err)
	}
}

func TestFFmpegSinkDeadConsumer(t *testing.T) {
	requireTool(t, "sh")
	// The consumer exits without reading; writes must eventually fail
	// rather than rendering into a dead sink forever.
	s, err := NewFFmpegSink(context.Background(), EncoderConfig{
		Path: "sh", Args: []string{"-c", "exit 0"},
	}, 4, 4, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	frame := make([]byte, 256<<10)
	var writeErr error
	for i := 0; i < 100; i++ {
		if writeErr = s.WriteFrame(frame); writeErr != nil {
			break
		}
	}
	if writeErr == nil {
		t.Error("100 large frames written into an exited consumer without error")
	}
}

func TestTailWriterKeepsTail(t *testing.T) {
	var buf bytes.Buffer
	w := tailWriter{&buf}
	head := bytes.Repeat([]byte("x"), stderrTail)
	w.Write(head)
	w.Write([]byte("the interesting part"))
	got := buf.String()
	if len(got) > stderrTail {
		t.Errorf("tail grew to %d bytes, cap is %d", len(got), stderrTail)
	}
	if !strings.HasSuffix(got, "the interesting part") {
		t.Error("latest stderr output dropped from the tail")
	}
}

func TestFFmpegSinkCancelledContext(t *testing.T) {
	requireTool(t, "cat")
	ctx, cancel := context.WithCancel(context.Background())
	s, err := NewFFmpegSink(ctx, EncoderConfig{Path: "cat", Args: []string{"-"}}, 4, 4, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	cancel()

	// The kill races the write; either the write fails or Close reports the
	// killed process. Both surface the abort.
	frame := make([]byte, 1<<20)
	var failed bool
	for i := 0; i < 50 && !failed; i++ {
		failed = s.WriteFrame(frame) != nil
	}
	if err := s.Close(); err == nil && !failed {
		t.Error("cancellation surfaced neither on write nor on close")
	}
}
