package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

var (
	buildBlackboxOnce sync.Once
	blackboxBin       string
	errBlackboxBuild  error
)

func repoRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve caller")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../.."))
}

func blackboxBinary(t *testing.T) string {
	t.Helper()
	root := repoRoot(t)
	buildBlackboxOnce.Do(func() {
		dir, err := os.MkdirTemp("", "jtreefmt-blackbox-*")
		if err != nil {
			errBlackboxBuild = err
			return
		}
		blackboxBin = filepath.Join(dir, "jtreefmt")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		cmd := exec.CommandContext(
			ctx,
			"go", "build", "-trimpath", "-buildvcs=false", "-ldflags=-s -w -buildid=", "-o", blackboxBin, "./cmd/jtreefmt",
		)
		cmd.Dir = root
		cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
		errBlackboxBuild = cmd.Run()
	})
	if errBlackboxBuild != nil {
		t.Fatalf("build blackbox binary: %v", errBlackboxBuild)
	}
	return blackboxBin
}

func runBlackbox(t *testing.T, args []string, stdin []byte) (int, []byte, []byte) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, blackboxBinary(t), args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return 0, stdout.Bytes(), stderr.Bytes()
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode(), stdout.Bytes(), stderr.Bytes()
	}
	t.Fatalf("run blackbox: %v", err)
	return 0, nil, nil
}

func TestBlackboxCompactRoundTrip(t *testing.T) {
	code, stdout, stderr := runBlackbox(t, []string{"-"}, []byte(`{"a":1,"b":[true,false]}`))
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%q", code, string(stderr))
	}
	want := "{\"a\":1.000000,\"b\":[true,false]}\n"
	if string(stdout) != want {
		t.Fatalf("got %q, want %q", string(stdout), want)
	}
}

func TestBlackboxQueryFlag(t *testing.T) {
	code, stdout, stderr := runBlackbox(t, []string{"--query", "b.0"}, []byte(`{"a":1,"b":[42,43]}`))
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%q", code, string(stderr))
	}
	if string(stdout) != "42.000000\n" {
		t.Fatalf("got %q", string(stdout))
	}
}

func TestBlackboxTopLevelHelpExitZero(t *testing.T) {
	code, stdout, stderr := runBlackbox(t, []string{"--help"}, nil)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%q", code, string(stderr))
	}
	if !bytes.Contains(stdout, []byte("usage: jtreefmt")) {
		t.Fatalf("unexpected help output: %q", string(stdout))
	}
}

func TestBlackboxParseErrorExitsTwo(t *testing.T) {
	code, _, stderr := runBlackbox(t, []string{"-"}, []byte(`{"a":}`))
	if code != 2 {
		t.Fatalf("expected exit 2, got %d stderr=%q", code, string(stderr))
	}
}
