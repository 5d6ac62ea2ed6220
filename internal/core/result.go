// Package core provides the main business logic for fsextra.
package core

import "github.com/darkawower/fsextra/internal/metadata"

// PathReport is the outcome of a metadata lookup for one path.
type PathReport struct {
	// Path is the path as given by the caller.
	Path string

	// Result holds the metadata when Err is nil.
	Result metadata.Result

	// Err is the failure for this path, if any.
	Err error
}

// Failed reports whether the lookup failed.
func (r PathReport) Failed() bool {
	return r.Err != nil
}

// Kind describes what a metadata result points at.
type Kind string

const (
	KindMissing   Kind = "missing"
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
	KindOther     Kind = "other"
)

// KindOf classifies a metadata result.
func KindOf(r metadata.Result) Kind {
	switch {
	case !r.IsExist:
		return KindMissing
	case r.IsDir:
		return KindDirectory
	case r.IsFile:
		return KindFile
	default:
		return KindOther
	}
}

// Summary aggregates a set of reports.
type Summary struct {
	// Total is the sum of sizes of successful lookups.
	Total uint64

	// Failed counts lookups that returned an error.
	Failed int

	// Missing counts paths that do not exist.
	Missing int
}

// Summarize aggregates reports.
func Summarize(reports []PathReport) Summary {
	var s Summary
	for _, r := range reports {
		switch {
		case r.Failed():
			s.Failed++
		case !r.Result.IsExist:
			s.Missing++
		default:
			s.Total += r.Result.Size
		}
	}
	return s
}
