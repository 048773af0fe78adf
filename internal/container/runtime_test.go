// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records piped calls and answers from canned tables.
type mockExecutor struct {
	availableBins map[string]bool
	runnableCmds  map[string]bool // "bin arg1 arg2" -> RunSilent succeeds
	runPipedFunc  func(name string, args []string, stdin io.Reader, stdout io.Writer) error

	lastPiped []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	m.lastPiped = append([]string{name}, args...)
	if m.runPipedFunc != nil {
		return m.runPipedFunc(name, args, stdin, stdout)
	}
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "docker on PATH but daemon down",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(tt.exec)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "no container runtime available")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	e := &mockExecutor{runnableCmds: map[string]bool{
		"docker image inspect poppler:latest": true,
		"podman image exists poppler:latest":  true,
	}}

	assert.NoError(t, newDockerRuntime(e).ImageExists("poppler:latest"))
	assert.NoError(t, newPodmanRuntime(e).ImageExists("poppler:latest"))

	err := newDockerRuntime(e).ImageExists("missing:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing:1")
}

func TestRun(t *testing.T) {
	e := &mockExecutor{
		runPipedFunc: func(name string, args []string, stdin io.Reader, stdout io.Writer) error {
			data, _ := io.ReadAll(stdin)
			_, _ = stdout.Write([]byte("text of " + string(data)))
			return nil
		},
	}
	rt := newPodmanRuntime(e)

	var out bytes.Buffer
	err := rt.Run("poppler:latest", []string{"pdftotext", "-f", "3", "-l", "3", "-", "-"}, strings.NewReader("pdf bytes"), &out)
	require.NoError(t, err)
	assert.Equal(t, "text of pdf bytes", out.String())
	assert.Equal(t,
		[]string{"podman", "run", "--rm", "-i", "poppler:latest", "pdftotext", "-f", "3", "-l", "3", "-", "-"},
		e.lastPiped)
}

func TestRunError(t *testing.T) {
	e := &mockExecutor{
		runPipedFunc: func(string, []string, io.Reader, io.Writer) error {
			return errors.New("exit status 1")
		},
	}
	err := newDockerRuntime(e).Run("poppler:latest", []string{"pdfinfo", "-"}, strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdfinfo")
	assert.Contains(t, err.Error(), "docker")
}
