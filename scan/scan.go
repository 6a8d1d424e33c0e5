// Package scan walks a directory tree, extracts a document per top-level
// type from every Java source file, and collects the results. Files are
// processed by independent stateless workers; a failing file is logged and
// skipped without aborting the batch.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/javamap/java"
)

var log = commonlog.GetLogger("javamap.scan")

// Options controls one scan run.
type Options struct {
	Root    string
	Exclude []string // directory names skipped during the walk
	Workers int      // concurrent file workers; <=0 means 4
}

// Result is the outcome of one run: the collected documents plus the
// per-file errors that were skipped over.
type Result struct {
	Documents []*java.Document
	Errors    []FileError
}

// FileError records one skipped file.
type FileError struct {
	Path string
	Err  error
}

// Run scans opts.Root. Every file is handled by exactly one worker with no
// state shared between files; the only shared resource is the append-only
// result collector, guarded by a mutex. Documents are sorted by file path
// and class name afterwards so output does not depend on completion order.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := listJavaFiles(opts.Root, opts.Exclude)
	if err != nil {
		return nil, err
	}
	log.Infof("found %d java files under %s", len(files), opts.Root)

	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	var (
		mu     sync.Mutex
		result Result
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for _, file := range files {
		file := file
		group.Go(func() error {
			docs, err := processFile(ctx, file, opts.Root)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Errorf("skipping %s: %s", file, err.Error())
				result.Errors = append(result.Errors, FileError{Path: file, Err: err})
				return nil
			}
			result.Documents = append(result.Documents, docs...)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(result.Documents, func(i, j int) bool {
		if result.Documents[i].FilePath != result.Documents[j].FilePath {
			return result.Documents[i].FilePath < result.Documents[j].FilePath
		}
		return result.Documents[i].ClassName < result.Documents[j].ClassName
	})
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})

	return &result, nil
}

// processFile extracts all documents for a single source file. The file
// path in each document is relative to the scan root, with forward slashes
// regardless of host convention.
func processFile(ctx context.Context, path, root string) ([]*java.Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	models, err := java.TypeModelsFromSource(ctx, source, rel)
	if err != nil {
		return nil, err
	}

	docs := make([]*java.Document, 0, len(models))
	for _, model := range models {
		docs = append(docs, java.BuildDocument(model))
	}
	return docs, nil
}

func listJavaFiles(root string, exclude []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || excluded(name, exclude)) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".java" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func excluded(name string, exclude []string) bool {
	for _, e := range exclude {
		if name == e {
			return true
		}
	}
	return false
}
