package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"hyperlex/internal/diag"
	"hyperlex/internal/source"
	"hyperlex/internal/trace"
)

// ListFiles returns the sorted paths under dir that TokenizeDir would parse
// with opts. Hidden directories are skipped.
func ListFiles(dir string, opts *Options) ([]string, error) {
	exts := opts.extensions()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range exts {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// TokenizeDir parses every matching file under dir in parallel. Results are
// in path order. A file that fails to load gets a result with a nil Result
// and an IOLoadFileError diagnostic.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "tokenize-dir")
	defer span.End(dir)

	files, err := ListFiles(dir, &opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet is not safe for concurrent writes, so every file is loaded
	// before the workers start.
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}
	_, loadSpan := trace.BeginCtx(ctx, trace.ScopePass, "load")
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}
	loadSpan.WithExtra("files", strconv.Itoa(len(files))).End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]FileResult, len(files))

	pctx, parseSpan := trace.BeginCtx(ctx, trace.ScopePass, "parse")
	g, gctx := errgroup.WithContext(pctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			started := time.Now()
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = FileResult{Path: path, Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
			// Each goroutine owns results[i].
			results[i] = tokenizeFile(gctx, fileSet.Get(fileIDs[path]), opts)
			stage := StageParse
			if results[i].Cached {
				stage = StageCache
			}
			emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusDone, Elapsed: time.Since(started)})
			return nil
		})
	}
	err = g.Wait()
	parseSpan.End("")
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
