// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs document conversion images under docker or podman.
// The document reader uses it for formats it cannot read natively.
package container

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

const (
	BinDocker = "docker"
	BinPodman = "podman"
)

// Runtime provides the container operations the converter needs.
type Runtime interface {
	// Name returns the runtime binary name ("docker" or "podman").
	Name() string

	// Available reports whether the binary is on PATH and answers "info".
	Available(ctx context.Context) bool

	// ImageExists returns nil when image is present locally.
	ImageExists(ctx context.Context, image string) error

	// Run starts image with stdin attached and copies its stdout to stdout.
	Run(ctx context.Context, image string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// cli implements Runtime for one container binary. Docker and podman share
// the same flags except for the image existence check.
type cli struct {
	bin           string
	imageCheckCmd []string
	exec          executor
}

func (c *cli) Name() string { return c.bin }

func (c *cli) Available(ctx context.Context) bool {
	if _, err := c.exec.LookPath(c.bin); err != nil {
		return false
	}
	return c.exec.RunSilent(ctx, c.bin, "info") == nil
}

func (c *cli) ImageExists(ctx context.Context, image string) error {
	args := append(append([]string{}, c.imageCheckCmd...), image)
	if err := c.exec.RunSilent(ctx, c.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, c.bin, err)
	}
	return nil
}

func (c *cli) Run(ctx context.Context, image string, stdin io.Reader, stdout io.Writer) error {
	args := []string{"run", "--rm", "-i", "--network", "none", image}
	if err := c.exec.RunPiped(ctx, c.bin, args, stdin, stdout); err != nil {
		return fmt.Errorf("running %s container %s: %w", c.bin, image, err)
	}
	return nil
}

func newCLI(bin string, exec executor) *cli {
	check := []string{"image", "inspect"}
	if bin == BinPodman {
		check = []string{"image", "exists"}
	}
	return &cli{bin: bin, imageCheckCmd: check, exec: exec}
}

// Detect returns the preferred runtime when it is available. An empty
// preference tries docker first and falls back to podman.
func Detect(ctx context.Context, preferred string) (Runtime, error) {
	return detect(ctx, preferred, osExecutor{})
}

func detect(ctx context.Context, preferred string, exec executor) (Runtime, error) {
	candidates := []string{BinDocker, BinPodman}
	switch preferred {
	case "":
	case BinDocker, BinPodman:
		candidates = []string{preferred}
	default:
		return nil, fmt.Errorf("unsupported container runtime %q: use %s or %s", preferred, BinDocker, BinPodman)
	}

	for _, bin := range candidates {
		if rt := newCLI(bin, exec); rt.Available(ctx) {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: tried %v", candidates)
}
