package platform

import "fmt"

// Spawner starts program with args and returns once it is running.
type Spawner func(program string, args []string) error

// FileManager implements FileManagerService by launching the native file manager.
type FileManager struct {
	launcher Launcher
	spawn    Spawner
}

// Launcher returns the launcher used by the file manager.
func (m *FileManager) Launcher() Launcher {
	return m.launcher
}

// View starts the launcher for req and returns without waiting for it.
func (m *FileManager) View(req ViewRequest) error {
	args := m.launcher.Args(req)
	if err := m.spawn(m.launcher.Program, args); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrProcessSpawn, m.launcher.Program, req.Path, err)
	}
	return nil
}

// Reveal opens the file manager and highlights the specified path.
func (m *FileManager) Reveal(path string) error {
	return m.View(ViewRequest{Path: path, Finder: true})
}

// Open opens the path with the default application.
func (m *FileManager) Open(path string) error {
	return m.View(ViewRequest{Path: path})
}

var _ FileManagerService = (*FileManager)(nil)
