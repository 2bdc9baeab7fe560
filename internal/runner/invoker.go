// Package runner drives the external transform binary for one subject at a
// time.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/harrison/flowtests/internal/artifact"
	"github.com/harrison/flowtests/internal/models"
	"github.com/harrison/flowtests/internal/report"
)

// ErrMissingResources is returned when a subject's resource directory does
// not exist. Callers skip the subject rather than fail the run.
var ErrMissingResources = errors.New("resource directory not found")

// Invoker manages execution of the transform binary
type Invoker struct {
	TransformPath string
	ResourceRoot  string
	Timeout       time.Duration
	Store         artifact.Store
}

// InvocationResult captures the result of one transform invocation
type InvocationResult struct {
	Subject     string
	ResourceDir string
	LogPath     string
	ExitCode    int
	Duration    time.Duration
	Error       error
}

// NewInvoker creates an Invoker backed by the filesystem store
func NewInvoker(transformPath, resourceRoot string, timeout time.Duration) *Invoker {
	return &Invoker{
		TransformPath: transformPath,
		ResourceRoot:  resourceRoot,
		Timeout:       timeout,
		Store:         artifact.NewFSStore(),
	}
}

// ResourceDir returns <root>/<AppName>/Contents/Resources for subject
func (inv *Invoker) ResourceDir(subject models.Subject) string {
	return filepath.Join(inv.ResourceRoot, subject.AppName, "Contents", "Resources")
}

// CheckResources reports ErrMissingResources when the subject's resource
// directory is absent.
func (inv *Invoker) CheckResources(subject models.Subject) error {
	dir := inv.ResourceDir(subject)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", dir, ErrMissingResources)
		}
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", dir, ErrMissingResources)
	}
	return nil
}

// BuildCommandArgs returns the transform arguments for subject
func (inv *Invoker) BuildCommandArgs(subject models.Subject) []string {
	resDir := inv.ResourceDir(subject)
	return []string{
		filepath.Join(resDir, subject.ResourceA),
		filepath.Join(resDir, subject.ResourceB),
	}
}

// Prepare clears every image from dir and makes sure it exists
func (inv *Invoker) Prepare(dir string) error {
	images, err := inv.Store.ListAllImages(dir)
	if err != nil {
		return err
	}
	for _, path := range images {
		if err := inv.Store.Remove(path); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create subject directory: %w", err)
	}
	return nil
}

// Invoke runs the transform for subject inside dir. Standard output is
// written to dir/log.txt and copied to console when it is non-nil.
// Transform failures are reported on the result; the returned error covers
// only setup problems.
func (inv *Invoker) Invoke(ctx context.Context, subject models.Subject, dir string, console io.Writer) (*InvocationResult, error) {
	startTime := time.Now()

	result := &InvocationResult{
		Subject:     subject.RawName,
		ResourceDir: inv.ResourceDir(subject),
		LogPath:     filepath.Join(dir, report.LogFileName),
	}

	if err := inv.Prepare(dir); err != nil {
		return nil, err
	}

	logFile, err := os.Create(result.LogPath)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	defer logFile.Close()

	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	transform, err := filepath.Abs(inv.TransformPath)
	if err != nil {
		return nil, fmt.Errorf("resolve transform path: %w", err)
	}
	if filepath.Base(inv.TransformPath) == inv.TransformPath {
		// bare command names are looked up on PATH
		transform = inv.TransformPath
	}

	cmd := exec.CommandContext(ctx, transform, inv.BuildCommandArgs(subject)...)
	cmd.Dir = dir
	if console != nil {
		cmd.Stdout = io.MultiWriter(logFile, console)
		cmd.Stderr = console
	} else {
		cmd.Stdout = logFile
	}

	err = cmd.Run()
	result.Duration = time.Since(startTime)

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			result.Error = fmt.Errorf("transform timed out after %v: %w", inv.Timeout, ctx.Err())
			result.ExitCode = -1
		case ctx.Err() != nil:
			result.Error = fmt.Errorf("transform cancelled: %w", ctx.Err())
			result.ExitCode = -1
		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
			result.Error = fmt.Errorf("transform exited with code %d", result.ExitCode)
		default:
			result.Error = err
		}
	}

	return result, nil
}
