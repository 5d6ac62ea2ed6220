// Package platform provides OS-agnostic access to the native file manager.
package platform

import "errors"

var (
	ErrUnsupported  = errors.New("operation not supported on this platform")
	ErrProcessSpawn = errors.New("failed to start file manager")
)

// Family is the operating system family the binary was built for.
type Family string

const (
	FamilyUnix    Family = "unix"
	FamilyWindows Family = "windows"
)

// Launcher describes how a family's file manager is invoked.
type Launcher struct {
	// Program is the executable that opens or reveals a path.
	Program string

	// RevealFlag is placed before the path to select it in its parent folder.
	RevealFlag string
}

var launchers = map[Family]Launcher{
	FamilyUnix:    {Program: "open", RevealFlag: "-R"},
	FamilyWindows: {Program: "explorer", RevealFlag: "/select,"},
}

// Host returns the family selected at build time.
func Host() Family {
	return hostFamily
}

// LauncherFor returns the launcher of the given family.
func LauncherFor(f Family) (Launcher, error) {
	l, ok := launchers[f]
	if !ok {
		return Launcher{}, ErrUnsupported
	}
	return l, nil
}

// Args builds the launcher argument list for req.
func (l Launcher) Args(req ViewRequest) []string {
	if req.Finder {
		return []string{l.RevealFlag, req.Path}
	}
	return []string{req.Path}
}

// ViewRequest asks the file manager to show a path.
type ViewRequest struct {
	// Path is the file or directory to show.
	Path string

	// Finder selects the path in its parent folder instead of opening it.
	Finder bool
}

// NewViewRequest returns a reveal request for path.
func NewViewRequest(path string) ViewRequest {
	return ViewRequest{Path: path, Finder: true}
}

// FileManagerService provides file manager operations.
type FileManagerService interface {
	// View opens or reveals the requested path.
	View(req ViewRequest) error

	// Reveal opens the file manager and highlights the specified path.
	Reveal(path string) error

	// Open opens the path with the default application.
	Open(path string) error
}
