package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bubblesim/internal/config"
	"github.com/tomz197/bubblesim/internal/server"
)

func TestRunHeadless(t *testing.T) {
	logger := log.New(io.Discard)
	srv := server.NewServer(server.Options{Seed: 1, Logger: logger})

	var out bytes.Buffer
	if err := runHeadless(srv, 50, logger, &out); err != nil {
		t.Fatal(err)
	}
	if got := srv.GetSnapshot().Tick; got != 50 {
		t.Fatalf("tick = %d, want 50", got)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != config.ArenaHeight/2 {
		t.Fatalf("frame has %d lines, want %d", len(lines), config.ArenaHeight/2)
	}
}

func TestRunHeadlessRecordsTrace(t *testing.T) {
	dir := t.TempDir()
	err := run(log.New(io.Discard), options{
		seed:    3,
		dataDir: dir,
		record:  dir + "/trace.db",
		ticks:   5,
		out:     io.Discard,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := run(log.New(io.Discard), options{seed: 3, dataDir: dir, record: dir + "/trace.db", out: io.Discard}); err == nil {
		t.Fatal("expected an error reusing an existing trace file")
	}
}

func TestStartExitCodes(t *testing.T) {
	dir := t.TempDir()
	stdout, err := os.CreateTemp(dir, "stdout")
	if err != nil {
		t.Fatal(err)
	}
	defer stdout.Close()

	trace := filepath.Join(dir, "trace.db")
	args := []string{"-headless", "-ticks", "3", "-seed", "5", "-data-dir", dir, "-record", trace}

	if code := start(args, stdout, io.Discard); code != 0 {
		t.Fatalf("first run exit code = %d, want 0", code)
	}
	// The trace file now exists, so the second run must fail cleanly
	if code := start(args, stdout, io.Discard); code != 1 {
		t.Fatalf("second run exit code = %d, want 1", code)
	}
	if code := start([]string{"-no-such-flag"}, stdout, io.Discard); code != 2 {
		t.Fatalf("bad flag exit code = %d, want 2", code)
	}

	info, err := stdout.Stat()
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("headless run printed no frame")
	}
}
