package metadata

import (
	"context"
	"path/filepath"
)

// DirSize returns the total byte size of all regular files below dir.
//
// Directories are visited from an explicit stack, so nesting depth does not
// grow the call stack. Entry info comes from the directory listing and does
// not follow symbolic links; anything that is neither a regular file nor a
// directory adds nothing. The first listing or stat failure aborts the walk
// and no partial total is returned.
func DirSize(ctx context.Context, fsys FileSystem, dir string) (uint64, error) {
	var total uint64
	pending := []string{dir}

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := fsys.ReadDir(current)
		if err != nil {
			return 0, wrapErr("read dir", current, err)
		}

		for _, entry := range entries {
			entryPath := filepath.Join(current, entry.Name())

			info, err := entry.Info()
			if err != nil {
				return 0, wrapErr("stat", entryPath, err)
			}

			switch mode := info.Mode(); {
			case mode.IsRegular():
				total += uint64(info.Size())
			case mode.IsDir():
				pending = append(pending, entryPath)
			}
		}
	}

	return total, nil
}
