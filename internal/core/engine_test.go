package core

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/darkawower/fsextra/internal/config"
	"github.com/darkawower/fsextra/internal/metadata"
	"github.com/darkawower/fsextra/internal/platform"
	"github.com/darkawower/fsextra/internal/platform/stub"
)

// deniedFS refuses to list one directory and otherwise uses the OS.
type deniedFS struct {
	denied string
}

func (f deniedFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (f deniedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name == f.denied {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return os.ReadDir(name)
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
}

func TestNew_Defaults(t *testing.T) {
	e := New(nil)

	require.NotNil(t, e)
	assert.True(t, e.DefaultFinder())
	assert.Equal(t, config.DefaultConcurrency, e.concurrency)
	assert.IsType(t, &platform.FileManager{}, e.files)
}

func TestNew_LauncherOverride(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Reveal.Launcher = "xdg-open"

	e := New(cfg)

	fm, ok := e.files.(*platform.FileManager)
	require.True(t, ok)
	assert.Equal(t, "xdg-open", fm.Launcher().Program)
}

func TestNew_ConcurrencyFloor(t *testing.T) {
	e := New(nil, WithConcurrency(0))
	assert.Equal(t, 1, e.concurrency)
}

func TestEngine_Metadata(t *testing.T) {
	root := filepath.Join(t.TempDir(), "root")
	writeFile(t, filepath.Join(root, "a.txt"), 100)
	writeFile(t, filepath.Join(root, "sub", "b.txt"), 50)

	obs, logs := observer.New(zapcore.DebugLevel)
	e := New(nil, WithLogger(zap.New(obs)))

	result, err := e.Metadata(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, metadata.Result{Size: 150, IsDir: true, IsExist: true}, result)

	entries := logs.FilterMessage("metadata computed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, root, entries[0].ContextMap()["path"])
	assert.Equal(t, uint64(150), entries[0].ContextMap()["size"])
	assert.Equal(t, "directory", entries[0].ContextMap()["kind"])
}

func TestEngine_MetadataMissing(t *testing.T) {
	e := New(nil)

	result, err := e.Metadata(context.Background(), "/does/not/exist")

	require.NoError(t, err)
	assert.Equal(t, metadata.Result{}, result)
}

func TestEngine_MetadataFailureIsReturnedAndLogged(t *testing.T) {
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "x"), 10)

	obs, logs := observer.New(zapcore.DebugLevel)
	e := New(nil, WithLogger(zap.New(obs)), WithFileSystem(deniedFS{denied: locked}))

	result, err := e.Metadata(context.Background(), root)

	require.Error(t, err)
	assert.True(t, errors.Is(err, metadata.ErrFilesystem))
	assert.Equal(t, metadata.Result{}, result)
	assert.Equal(t, 1, logs.FilterMessage("metadata failed").Len())
}

func TestEngine_MetadataAll(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.bin")
	dir := filepath.Join(root, "dir")
	locked := filepath.Join(root, "locked")
	missing := filepath.Join(root, "missing")
	writeFile(t, file, 7)
	writeFile(t, filepath.Join(dir, "a"), 3)
	writeFile(t, filepath.Join(dir, "b", "c"), 5)
	writeFile(t, filepath.Join(locked, "x"), 1)

	e := New(nil, WithConcurrency(2), WithFileSystem(deniedFS{denied: locked}))
	paths := []string{file, dir, locked, missing}

	reports := e.MetadataAll(context.Background(), paths)

	require.Len(t, reports, 4)
	for i, r := range reports {
		assert.Equal(t, paths[i], r.Path)
	}

	assert.NoError(t, reports[0].Err)
	assert.Equal(t, metadata.Result{Size: 7, IsFile: true, IsExist: true}, reports[0].Result)

	assert.NoError(t, reports[1].Err)
	assert.Equal(t, uint64(8), reports[1].Result.Size)

	assert.True(t, reports[2].Failed())
	assert.ErrorIs(t, reports[2].Err, fs.ErrPermission)

	assert.NoError(t, reports[3].Err)
	assert.False(t, reports[3].Result.IsExist)

	summary := Summarize(reports)
	assert.Equal(t, Summary{Total: 15, Failed: 1, Missing: 1}, summary)
}

func TestEngine_MetadataAllEmpty(t *testing.T) {
	e := New(nil)
	assert.Empty(t, e.MetadataAll(context.Background(), nil))
}

func TestEngine_View(t *testing.T) {
	rec := stub.New()
	e := New(nil, WithFileManager(rec))

	abs := func(p string) string {
		a, err := filepath.Abs(p)
		require.NoError(t, err)
		return a
	}

	require.NoError(t, e.Reveal("/tmp/x.txt"))
	require.NoError(t, e.Open("notes.txt"))
	require.NoError(t, e.View("/tmp/y", false))

	assert.Equal(t, []platform.ViewRequest{
		{Path: abs("/tmp/x.txt"), Finder: true},
		{Path: abs("notes.txt")},
		{Path: abs("/tmp/y")},
	}, rec.Requests())
}

func TestEngine_ViewSpawnFailure(t *testing.T) {
	cause := errors.New("exec: no such file")
	var calls int
	svc := platform.New(
		platform.WithFamily(platform.FamilyUnix),
		platform.WithSpawner(func(program string, args []string) error {
			calls++
			return cause
		}),
	)

	obs, logs := observer.New(zapcore.DebugLevel)
	e := New(nil, WithFileManager(svc), WithLogger(zap.New(obs)))

	err := e.Reveal("/tmp/x.txt")

	require.Error(t, err)
	assert.ErrorIs(t, err, platform.ErrProcessSpawn)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, logs.FilterMessage("view failed").Len())
}

func TestEngine_Config(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Reveal.Finder = false

	e := New(cfg, WithFileManager(stub.New()))

	assert.Same(t, cfg, e.Config())
	assert.False(t, e.DefaultFinder())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		result   metadata.Result
		expected Kind
	}{
		{metadata.Result{}, KindMissing},
		{metadata.Result{IsExist: true, IsFile: true}, KindFile},
		{metadata.Result{IsExist: true, IsDir: true}, KindDirectory},
		{metadata.Result{IsExist: true}, KindOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.result))
		})
	}
}

func TestPathReport_Failed(t *testing.T) {
	assert.False(t, PathReport{Path: "/x"}.Failed())
	assert.True(t, PathReport{Path: "/x", Err: errors.New("boom")}.Failed())
}
