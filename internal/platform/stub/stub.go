// Package stub provides a file manager that records requests instead of launching anything.
package stub

import (
	"strings"
	"sync"

	"github.com/darkawower/fsextra/internal/platform"
)

// FileManager implements platform.FileManagerService without spawning processes.
type FileManager struct {
	launcher platform.Launcher
	err      error

	mu       sync.Mutex
	requests []platform.ViewRequest
}

// New creates a recording file manager using the host launcher table entry.
func New() *FileManager {
	launcher, _ := platform.LauncherFor(platform.Host())
	return &FileManager{launcher: launcher}
}

// WithLauncher replaces the launcher used to describe commands.
func (f *FileManager) WithLauncher(l platform.Launcher) *FileManager {
	f.launcher = l
	return f
}

// FailWith makes every later request return err after being recorded.
func (f *FileManager) FailWith(err error) *FileManager {
	f.err = err
	return f
}

// View records req.
func (f *FileManager) View(req platform.ViewRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.err
}

// Reveal records a reveal request.
func (f *FileManager) Reveal(path string) error {
	return f.View(platform.ViewRequest{Path: path, Finder: true})
}

// Open records an open request.
func (f *FileManager) Open(path string) error {
	return f.View(platform.ViewRequest{Path: path})
}

// Requests returns the recorded requests in order.
func (f *FileManager) Requests() []platform.ViewRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]platform.ViewRequest(nil), f.requests...)
}

// Commands returns the command lines the native file manager would have run.
func (f *FileManager) Commands() []string {
	reqs := f.Requests()
	lines := make([]string, 0, len(reqs))
	for _, req := range reqs {
		parts := append([]string{f.launcher.Program}, f.launcher.Args(req)...)
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

// Compile-time check that FileManager implements platform.FileManagerService.
var _ platform.FileManagerService = (*FileManager)(nil)
