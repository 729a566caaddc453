package renamer

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"reshelf/internal/catalog"
	"reshelf/internal/config"
	"reshelf/internal/template"
)

// unsafeCharacters are stripped from generated filenames unless the
// configuration explicitly allows them.
var unsafeCharacters = regexp.MustCompile(`[<>:"/\\|?*]`)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// strictReplacer applies the Whisparr-compatible character replacement map to
// directory strings for filesystems with a stricter reserved-character set.
var strictReplacer = strings.NewReplacer(
	":", "",
	"<", "",
	">", "",
	"?", "!",
	"*", "-",
	"|", "",
	`"`, "",
)

// PathBuilder converts scene/file records into target directories and file
// names using the configured templates.
type PathBuilder struct {
	cfg      *config.Config
	resolver *template.Resolver
}

// NewPathBuilder constructs a path builder.
func NewPathBuilder(cfg *config.Config, resolver *template.Resolver) *PathBuilder {
	return &PathBuilder{cfg: cfg, resolver: resolver}
}

// Directory resolves the target directory for a file. With no directory
// template configured the file keeps its current parent directory. Otherwise
// the primary template applies when the scene's studio is linked to the
// configured default endpoint and the secondary template applies to everything
// else.
func (b *PathBuilder) Directory(ctx context.Context, scene *catalog.Scene, file *catalog.File) (string, error) {
	templates := b.cfg.Templates
	if strings.TrimSpace(templates.Directory) == "" {
		dir, err := filepath.Abs(filepath.Dir(file.Path))
		if err != nil {
			return "", fmt.Errorf("resolve source directory: %w", err)
		}
		return dir, nil
	}

	format := templates.Directory
	if !sceneUsesDefaultEndpoint(scene, b.cfg.Stash.DefaultEndpoint) && strings.TrimSpace(templates.DirectorySecondary) != "" {
		format = templates.DirectorySecondary
	}

	directory := b.resolver.Expand(ctx, format, scene, file, 0)
	directory, err := filepath.Abs(directory)
	if err != nil {
		return "", fmt.Errorf("resolve target directory: %w", err)
	}
	if b.cfg.Rename.StrictReplacements {
		directory = strictReplacer.Replace(directory)
	}
	return directory, nil
}

// Filename resolves the target basename for a file at the given duplicate
// index. With no filename template configured the original basename is kept.
func (b *PathBuilder) Filename(ctx context.Context, scene *catalog.Scene, file *catalog.File, duplicateIndex int) string {
	if strings.TrimSpace(b.cfg.Templates.Filename) == "" {
		return file.Basename
	}

	name := b.resolver.Expand(ctx, b.cfg.Templates.Filename, scene, file, duplicateIndex)

	if duplicateIndex > 0 {
		suffix := b.resolver.Expand(ctx, b.cfg.Templates.DuplicateSuffix, scene, file, duplicateIndex)
		if dot := strings.LastIndex(name, "."); dot >= 0 {
			name = name[:dot] + suffix + name[dot:]
		} else {
			name += suffix
		}
	}

	if !b.cfg.Rename.AllowUnsafeCharacters {
		name = unsafeCharacters.ReplaceAllString(name, "")
	}
	if b.cfg.Rename.CollapseSpaces {
		name = whitespaceRuns.ReplaceAllString(name, " ")
	}
	if b.cfg.Rename.NormalizeUnicode {
		name = norm.NFC.String(name)
	}
	return name
}

// TargetPath joins the resolved directory and filename into the candidate
// target path for the given duplicate index.
func (b *PathBuilder) TargetPath(ctx context.Context, scene *catalog.Scene, file *catalog.File, duplicateIndex int) (string, error) {
	directory, err := b.Directory(ctx, scene, file)
	if err != nil {
		return "", err
	}
	return filepath.Join(directory, b.Filename(ctx, scene, file, duplicateIndex)), nil
}

func sceneUsesDefaultEndpoint(scene *catalog.Scene, endpoint string) bool {
	if scene == nil {
		return false
	}
	return scene.Studio.HasEndpoint(endpoint)
}
