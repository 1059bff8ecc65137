package filesystem

import (
	"context"
	"fmt"

	"github.com/parcelfs/parcelfs/internal/archive"
	"github.com/parcelfs/parcelfs/internal/logging"
	"github.com/parcelfs/parcelfs/internal/shared/paths"
	"github.com/parcelfs/parcelfs/internal/shared/types"
	"github.com/parcelfs/parcelfs/internal/storage"
)

// Provider implements file and archive operations
type Provider struct {
	basic     *BasicOps
	directory *DirectoryOps
	archives  *ArchivesOps
	search    *SearchOps
	formats   *FormatsOps
	metadata  *MetadataOps
}

// NewProvider creates a modular filesystem provider
func NewProvider(store storage.PathStore, dirs paths.Dirs, log *logging.Logger) *Provider {
	ops := &FilesystemOps{
		Store: store,
		Zip:   archive.Zip(),
		Dirs:  dirs,
		Log:   log,
	}

	return &Provider{
		basic:     &BasicOps{FilesystemOps: ops},
		directory: &DirectoryOps{FilesystemOps: ops},
		archives:  &ArchivesOps{FilesystemOps: ops},
		search:    &SearchOps{FilesystemOps: ops},
		formats:   &FormatsOps{FilesystemOps: ops},
		metadata:  &MetadataOps{FilesystemOps: ops},
	}
}

// Definition returns service metadata with all module tools
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.basic.GetTools()...)
	tools = append(tools, p.directory.GetTools()...)
	tools = append(tools, p.archives.GetTools()...)
	tools = append(tools, p.search.GetTools()...)
	tools = append(tools, p.formats.GetTools()...)
	tools = append(tools, p.metadata.GetTools()...)

	return types.Service{
		ID:          "filesystem",
		Name:        "Filesystem Service",
		Description: "File, directory, archive, search, and format operations",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"read",
			"write",
			"archive",
			"extract",
			"search",
			"formats",
		},
		Tools: tools,
	}
}

// Execute routes to the appropriate operation module
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	// Basic file operations
	case "filesystem.read":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.basic.Read(ctx, path)
	case "filesystem.write":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		data, perr := stringParam(params, "data")
		if perr != nil {
			return failure(perr)
		}
		return p.basic.Write(ctx, path, data)
	case "filesystem.append":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		data, perr := stringParam(params, "data")
		if perr != nil {
			return failure(perr)
		}
		return p.basic.Append(ctx, path, data)
	case "filesystem.exists":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.basic.Exists(ctx, path)
	case "filesystem.delete":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.basic.Delete(ctx, path)
	case "filesystem.copy":
		source, perr := stringParam(params, "source")
		if perr != nil {
			return failure(perr)
		}
		destination, perr := stringParam(params, "destination")
		if perr != nil {
			return failure(perr)
		}
		return p.basic.Copy(ctx, source, destination)
	case "filesystem.stat":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.basic.Stat(ctx, path)

	// Directory operations
	case "filesystem.dir.list":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.directory.List(ctx, path)
	case "filesystem.dir.create":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.directory.Create(ctx, path)
	case "filesystem.dir.delete":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.directory.Delete(ctx, path)
	case "filesystem.dir.exists":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.directory.Exists(ctx, path)

	// Archive operations
	case "filesystem.zip.create":
		source, perr := stringParam(params, "source")
		if perr != nil {
			return failure(perr)
		}
		archivePath, perr := stringParam(params, "archive")
		if perr != nil {
			return failure(perr)
		}
		return p.archives.Compress(ctx, source, archivePath)
	case "filesystem.zip.extract":
		archivePath, perr := stringParam(params, "archive")
		if perr != nil {
			return failure(perr)
		}
		destination, perr := stringParam(params, "destination")
		if perr != nil {
			return failure(perr)
		}
		return p.archives.Decompress(ctx, archivePath, destination)
	case "filesystem.zip.list":
		archivePath, perr := stringParam(params, "archive")
		if perr != nil {
			return failure(perr)
		}
		return p.archives.ZipList(ctx, archivePath)
	case "filesystem.zip.read_text":
		archivePath, perr := stringParam(params, "archive")
		if perr != nil {
			return failure(perr)
		}
		target := optionalString(params, "target")
		deleteAfter := optionalBool(params, "delete_after", true)
		return p.archives.ReadStringFromZip(ctx, archivePath, target, deleteAfter)
	case "filesystem.tar.create":
		source, perr := stringParam(params, "source")
		if perr != nil {
			return failure(perr)
		}
		archivePath, perr := stringParam(params, "archive")
		if perr != nil {
			return failure(perr)
		}
		return p.archives.TarCreate(ctx, source, archivePath, optionalString(params, "compression"))
	case "filesystem.tar.extract":
		archivePath, perr := stringParam(params, "archive")
		if perr != nil {
			return failure(perr)
		}
		destination, perr := stringParam(params, "destination")
		if perr != nil {
			return failure(perr)
		}
		return p.archives.TarExtract(ctx, archivePath, destination)
	case "filesystem.tar.list":
		archivePath, perr := stringParam(params, "archive")
		if perr != nil {
			return failure(perr)
		}
		return p.archives.TarList(ctx, archivePath)
	case "filesystem.extract_auto":
		archivePath, perr := stringParam(params, "archive")
		if perr != nil {
			return failure(perr)
		}
		destination, perr := stringParam(params, "destination")
		if perr != nil {
			return failure(perr)
		}
		return p.archives.ExtractAuto(ctx, archivePath, destination)

	// Search operations
	case "filesystem.find":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		pattern, perr := stringParam(params, "pattern")
		if perr != nil {
			return failure(perr)
		}
		return p.search.Find(ctx, path, pattern)
	case "filesystem.glob":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		pattern, perr := stringParam(params, "pattern")
		if perr != nil {
			return failure(perr)
		}
		return p.search.Glob(ctx, path, pattern)
	case "filesystem.filter_by_extension":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		extensions, perr := stringSliceParam(params, "extensions")
		if perr != nil {
			return failure(perr)
		}
		return p.search.FilterByExtension(ctx, path, extensions)

	// Format operations
	case "filesystem.yaml.read":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.formats.YAMLRead(ctx, path)
	case "filesystem.yaml.write":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.formats.YAMLWrite(ctx, path, params["data"])
	case "filesystem.toml.read":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.formats.TOMLRead(ctx, path)
	case "filesystem.toml.write":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.formats.TOMLWrite(ctx, path, params["data"])
	case "filesystem.json.merge":
		files, perr := stringSliceParam(params, "files")
		if perr != nil {
			return failure(perr)
		}
		output, perr := stringParam(params, "output")
		if perr != nil {
			return failure(perr)
		}
		return p.formats.JSONMerge(ctx, files, output)

	// Metadata operations
	case "filesystem.mime_type":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.metadata.MIMEType(ctx, path)
	case "filesystem.is_text":
		path, perr := stringParam(params, "path")
		if perr != nil {
			return failure(perr)
		}
		return p.metadata.IsText(ctx, path)

	default:
		return Failure(types.ErrInvalidInput, fmt.Sprintf("unknown tool: %s", toolID), nil)
	}
}
