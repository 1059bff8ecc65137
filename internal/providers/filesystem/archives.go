package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/parcelfs/parcelfs/internal/archive"
	"github.com/parcelfs/parcelfs/internal/shared/types"
)

// ArchivesOps handles archive operations (zip, tar, tar.gz, tar.zst)
type ArchivesOps struct {
	*FilesystemOps
}

// GetTools returns archive operation tool definitions
func (a *ArchivesOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.zip.create",
			Name:        "Create ZIP",
			Description: "Compress a file or directory tree into a ZIP archive",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source file or directory", Required: true},
				{Name: "archive", Type: "string", Description: "Output ZIP path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.zip.extract",
			Name:        "Extract ZIP",
			Description: "Extract a ZIP archive into a destination directory",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "ZIP file path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.zip.list",
			Name:        "List ZIP",
			Description: "List ZIP archive contents",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "ZIP file path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.zip.read_text",
			Name:        "Read Text From ZIP",
			Description: "Extract a ZIP to scratch space, read one file as UTF-8 text, clean up",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "ZIP file path", Required: true},
				{Name: "target", Type: "string", Description: "Relative path of the file to read (optional)", Required: false},
				{Name: "delete_after", Type: "boolean", Description: "Delete scratch directory afterwards (default true)", Required: false},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.tar.create",
			Name:        "Create TAR",
			Description: "Create TAR archive (gzip/zstd compression)",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source file or directory", Required: true},
				{Name: "archive", Type: "string", Description: "Output TAR path", Required: true},
				{Name: "compression", Type: "string", Description: "Compression (none/gzip/zstd)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.tar.extract",
			Name:        "Extract TAR",
			Description: "Extract TAR archive (auto-detect compression)",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "TAR file path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.tar.list",
			Name:        "List TAR",
			Description: "List TAR archive contents",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "TAR file path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.extract_auto",
			Name:        "Auto-Extract",
			Description: "Auto-detect and extract archive",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "Archive file path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "object",
		},
	}
}

// Compress packs source (file or directory) into a zip archive at archivePath,
// creating the archive's parent directories as needed.
//
// Entries are named relative to source's parent: compressing /a/b stores
// entries under "b/...", and compressing a single file stores just its name.
// A failure mid-traversal aborts the operation and leaves a truncated archive
// behind; there is no rollback.
func (a *ArchivesOps) Compress(ctx context.Context, source, archivePath string) (*types.Result, error) {
	if source == "" || archivePath == "" {
		return Failure(types.ErrInvalidInput, "compress: source and archive paths required", nil)
	}
	if !a.Store.Exists(source) {
		return Failure(types.ErrNotFound, fmt.Sprintf("compress: source not found: %s", source), nil)
	}

	if parent := filepath.Dir(archivePath); parent != "" && parent != "." {
		if err := a.Store.MkdirAll(parent); err != nil {
			return Failure(types.ErrIOFailure, fmt.Sprintf("compress: create archive directory %s", parent), err)
		}
	}

	out, err := a.Store.OpenWrite(archivePath)
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("compress: create archive %s", archivePath), err)
	}

	zw := a.Zip.NewWriter(out)
	src := filepath.Clean(source)
	buf := make([]byte, copyBufferSize)
	files, total, walkErr := a.writeTree(ctx, zw, src, filepath.Dir(src), buf)

	closeErr := zw.Close()
	if err := out.Close(); closeErr == nil {
		closeErr = err
	}
	if walkErr != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("compress %s", source), walkErr)
	}
	if closeErr != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("compress: finalize archive %s", archivePath), closeErr)
	}

	a.Log.Debug("archive created",
		zap.String("archive", archivePath),
		zap.Int("files", files),
		zap.Int64("bytes", total))

	return Success(map[string]interface{}{
		"created":    true,
		"archive":    archivePath,
		"files":      files,
		"total_size": total,
	})
}

// writeTree walks node pre-order, streaming every regular file into the
// archive. Child order comes from the store's enumerator; correctness does
// not depend on it.
func (a *ArchivesOps) writeTree(ctx context.Context, zw archive.Writer, node, root string, buf []byte) (int, int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	info, err := a.Store.Stat(node)
	if err != nil {
		return 0, 0, err
	}

	if info.IsDir {
		children, err := a.Store.List(node)
		if err != nil {
			return 0, 0, err
		}
		files := 0
		var total int64
		for _, child := range children {
			n, size, err := a.writeTree(ctx, zw, child, root, buf)
			files += n
			total += size
			if err != nil {
				return files, total, err
			}
		}
		return files, total, nil
	}

	entry, err := zw.Create(entryName(node, root))
	if err != nil {
		return 0, 0, err
	}
	src, err := a.Store.OpenRead(node)
	if err != nil {
		return 0, 0, err
	}
	size, err := io.CopyBuffer(entry, src, buf)
	if cerr := src.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, 0, fmt.Errorf("write entry %s: %w", node, err)
	}
	return 1, size, nil
}

// entryName derives an archive entry name by stripping the parent of the
// traversal source and any leading separator, then normalizing to slashes.
func entryName(node, root string) string {
	name := strings.TrimPrefix(node, root)
	name = strings.TrimPrefix(name, string(os.PathSeparator))
	return filepath.ToSlash(name)
}

// Decompress extracts every entry of the zip archive at archivePath into
// destination, recreating parent directories as needed. Entries are applied
// in the order stored in the container. The first failing entry aborts the
// operation; files already extracted are not removed.
func (a *ArchivesOps) Decompress(ctx context.Context, archivePath, destination string) (*types.Result, error) {
	if archivePath == "" || destination == "" {
		return Failure(types.ErrInvalidInput, "decompress: archive and destination paths required", nil)
	}
	if !a.Store.Exists(archivePath) {
		return Failure(types.ErrNotFound, fmt.Sprintf("decompress: archive not found: %s", archivePath), nil)
	}

	ra, size, err := a.Store.OpenReaderAt(archivePath)
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("decompress: open archive %s", archivePath), err)
	}
	defer ra.Close()

	reader, err := a.Zip.OpenReader(ra, size)
	if err != nil {
		return Failure(types.ErrInvalidArchive, fmt.Sprintf("decompress: read archive %s", archivePath), err)
	}
	defer reader.Close()

	if err := a.Store.MkdirAll(destination); err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("decompress: create destination %s", destination), err)
	}

	cleanDest := filepath.Clean(destination)
	buf := make([]byte, copyBufferSize)
	files := 0

	for _, entry := range reader.Entries() {
		if err := ctx.Err(); err != nil {
			return Failure(types.ErrIOFailure, fmt.Sprintf("decompress %s cancelled", archivePath), err)
		}

		target := filepath.Join(cleanDest, filepath.FromSlash(entry.Name()))
		// Reject entries that escape the destination (zip-slip).
		if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
			continue
		}

		if entry.IsDir() {
			if err := a.Store.MkdirAll(target); err != nil {
				return Failure(types.ErrIOFailure, fmt.Sprintf("decompress: create directory %s", target), err)
			}
			continue
		}

		if err := a.Store.MkdirAll(filepath.Dir(target)); err != nil {
			return Failure(types.ErrIOFailure, fmt.Sprintf("decompress: create directory %s", filepath.Dir(target)), err)
		}
		if err := a.extractEntry(entry, target, buf); err != nil {
			return Failure(types.ErrIOFailure, fmt.Sprintf("decompress: extract %s", entry.Name()), err)
		}
		files++
	}

	return Success(map[string]interface{}{
		"extracted":   true,
		"destination": destination,
		"files":       files,
	})
}

func (a *ArchivesOps) extractEntry(entry archive.Entry, target string, buf []byte) error {
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := a.Store.OpenWrite(target)
	if err != nil {
		return err
	}
	_, err = io.CopyBuffer(dst, src, buf)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	return err
}

// ZipList lists the entries of a zip archive in stored order.
func (a *ArchivesOps) ZipList(ctx context.Context, archivePath string) (*types.Result, error) {
	if archivePath == "" {
		return Failure(types.ErrInvalidInput, "list: archive path required", nil)
	}
	if !a.Store.Exists(archivePath) {
		return Failure(types.ErrNotFound, fmt.Sprintf("list: archive not found: %s", archivePath), nil)
	}

	ra, size, err := a.Store.OpenReaderAt(archivePath)
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("list: open archive %s", archivePath), err)
	}
	defer ra.Close()

	reader, err := a.Zip.OpenReader(ra, size)
	if err != nil {
		return Failure(types.ErrInvalidArchive, fmt.Sprintf("list: read archive %s", archivePath), err)
	}
	defer reader.Close()

	entries := []map[string]interface{}{}
	for _, entry := range reader.Entries() {
		if err := ctx.Err(); err != nil {
			return Failure(types.ErrIOFailure, fmt.Sprintf("list %s cancelled", archivePath), err)
		}
		entries = append(entries, map[string]interface{}{
			"name":   entry.Name(),
			"size":   entry.Size(),
			"is_dir": entry.IsDir(),
		})
	}

	return Success(map[string]interface{}{
		"archive": archivePath,
		"entries": entries,
		"count":   len(entries),
	})
}
