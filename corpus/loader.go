package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/meysamhadeli/codectx/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LoaderOptions bounds how a directory is ingested.
type LoaderOptions struct {
	MaxWorkers    int // concurrent content reads; <= 0 means runtime.NumCPU()
	MaxFileSizeKB int // files above this are kept as binary entries; <= 0 means MaxTextFileSize
}

// Loader ingests a directory from disk into an immutable Corpus.
type Loader struct {
	options LoaderOptions
	logger  *zap.Logger
}

// NewLoader creates a loader. A nil logger discards log output.
func NewLoader(options LoaderOptions, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.MaxWorkers <= 0 {
		options.MaxWorkers = runtime.NumCPU()
	}
	return &Loader{options: options, logger: logger}
}

func (l *Loader) maxFileSize() int64 {
	if l.options.MaxFileSizeKB <= 0 {
		return MaxTextFileSize
	}
	return int64(l.options.MaxFileSizeKB) * 1024
}

// Load builds the tree for root and then reads file contents concurrently. The
// children of root become the corpus' top-level entries. Per-file failures are
// recorded on the entry; only an unreadable root fails the load.
func (l *Loader) Load(ctx context.Context, root string) (Corpus, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat corpus root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus root %s is not a directory", root)
	}

	patterns, err := utils.GetIgnorePatterns(root)
	if err != nil {
		return nil, err
	}

	children, err := l.buildDirectory(root, "", patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus root: %w", err)
	}
	c := Corpus(children)

	if err := l.readContents(ctx, root, c); err != nil {
		return nil, err
	}

	l.logger.Info("Corpus loaded",
		zap.String("root", root),
		zap.Int("files", len(c.Files())))
	return c, nil
}

// buildDirectory constructs the entries below dir without reading file contents.
func (l *Loader) buildDirectory(dir string, parent string, patterns []string) (map[string]*FileEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	children := make(map[string]*FileEntry, len(dirEntries))
	for _, d := range dirEntries {
		name := d.Name()
		entryPath := name
		if parent != "" {
			entryPath = parent + "/" + name
		}
		if utils.IsIgnored(entryPath, patterns) {
			continue
		}

		if d.IsDir() {
			entry := &FileEntry{Name: name, Path: entryPath, Kind: KindDirectory, Children: map[string]*FileEntry{}}
			if !IsExcludedDirectory(name) {
				sub, err := l.buildDirectory(filepath.Join(dir, name), entryPath, patterns)
				if err != nil {
					l.logger.Warn("Failed to read directory", zap.String("path", entryPath), zap.Error(err))
					entry.Error = fmt.Sprintf("Failed to process: %v", err)
				} else {
					entry.Children = sub
				}
			}
			children[name] = entry
			continue
		}

		if !d.Type().IsRegular() {
			continue
		}

		entry := &FileEntry{Name: name, Path: entryPath, Kind: KindFile, Language: LanguageFromName(name)}
		if fileInfo, err := d.Info(); err != nil {
			entry.Error = fmt.Sprintf("Failed to process: %v", err)
		} else {
			entry.Size = fileInfo.Size()
			entry.Binary = IsBinaryName(name, entry.Size) || entry.Size > l.maxFileSize()
		}
		children[name] = entry
	}
	return children, nil
}

// readContents fills in the content of every readable text file.
func (l *Loader) readContents(ctx context.Context, root string, c Corpus) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(l.options.MaxWorkers)

	for _, entry := range c.Files() {
		if entry.Binary || entry.Error != "" {
			continue
		}
		entry := entry
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(entry.Path)))
			if err != nil {
				l.logger.Warn("Failed to read file", zap.String("path", entry.Path), zap.Error(err))
				entry.Error = fmt.Sprintf("Failed to read file: %v", err)
				return nil
			}
			if IsBinaryContent(data) {
				entry.Binary = true
				return nil
			}
			entry.Content = string(data)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("failed to read corpus contents: %w", err)
	}
	return nil
}
