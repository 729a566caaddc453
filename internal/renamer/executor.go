package renamer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"reshelf/internal/catalog"
	"reshelf/internal/config"
	"reshelf/internal/logging"
	"reshelf/internal/services"
)

// Action describes the outcome of one rename attempt.
type Action string

const (
	// ActionRenamed means the catalog move was committed.
	ActionRenamed Action = "renamed"
	// ActionDryRun means the rename was simulated only.
	ActionDryRun Action = "dry-run"
	// ActionNoop means the computed target equals the source path.
	ActionNoop Action = "noop"
	// ActionSkipped means the file was not processed (e.g. missing on disk).
	ActionSkipped Action = "skipped"
)

// Outcome reports what happened to one file.
type Outcome struct {
	SceneID        string
	FileID         string
	OldPath        string
	NewPath        string
	DuplicateIndex int
	Action         Action
	Reason         string
}

// Mover commits a rename on the catalog side. The catalog is expected to move
// the physical file along with its database entity.
type Mover interface {
	MoveFile(ctx context.Context, fileID, destinationFolder, destinationBasename string) error
}

// Executor orchestrates path resolution, collision avoidance, the catalog
// move, and related-file renaming for one file at a time.
type Executor struct {
	cfg     *config.Config
	builder *PathBuilder
	mover   Mover
	logger  *slog.Logger
}

// NewExecutor constructs a rename executor.
func NewExecutor(cfg *config.Config, builder *PathBuilder, mover Mover, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Executor{
		cfg:     cfg,
		builder: builder,
		mover:   mover,
		logger:  logger.With(logging.String(logging.FieldComponent, "renamer")),
	}
}

// Rename computes the target path for a file and commits the move. A missing
// source is reported and skipped without failing the batch. Related files are
// renamed after the primary move succeeds, or simulated in dry-run mode.
func (e *Executor) Rename(ctx context.Context, scene *catalog.Scene, file *catalog.File) (*Outcome, error) {
	logger := logging.WithContext(ctx, e.logger)

	oldPath, err := filepath.Abs(file.Path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "renamer", "resolve source path", file.Path, err)
	}

	outcome := &Outcome{SceneID: scene.ID, FileID: file.ID, OldPath: oldPath}

	if _, err := os.Stat(oldPath); errors.Is(err, os.ErrNotExist) {
		logger.Warn("file for scene does not exist on disk", logging.String("path", oldPath))
		outcome.Action = ActionSkipped
		outcome.Reason = "source missing on disk"
		return outcome, nil
	}

	newPath, duplicateIndex, err := e.resolveCollision(ctx, logger, scene, file, oldPath)
	if err != nil {
		return nil, err
	}
	outcome.NewPath = newPath
	outcome.DuplicateIndex = duplicateIndex

	if newPath == oldPath {
		logger.Info("file paths are the same, no renaming needed")
		outcome.Action = ActionNoop
		return outcome, nil
	}

	logger.Info("renaming file",
		logging.String("old_path", oldPath),
		logging.String("new_path", newPath),
	)

	if e.cfg.Rename.DryRun {
		logger.Info("dry run enabled, not renaming the file")
		e.renameRelated(ctx, logger, oldPath, newPath, true)
		outcome.Action = ActionDryRun
		return outcome, nil
	}

	destinationFolder := filepath.Dir(newPath)
	destinationBasename := filepath.Base(newPath)
	if err := e.mover.MoveFile(ctx, file.ID, destinationFolder, destinationBasename); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "renamer", "move file", fmt.Sprintf("catalog move to %s failed", newPath), err)
	}
	logger.Info("file renamed", logging.String("new_path", newPath))

	e.renameRelated(ctx, logger, oldPath, newPath, false)
	outcome.Action = ActionRenamed
	return outcome, nil
}

// resolveCollision computes candidate target paths, incrementing the duplicate
// index until a candidate neither exists nor equals the source path. Each
// increment feeds back into the filename and duplicate-suffix templates. The
// iteration cap guards against templates whose output never changes with the
// index.
func (e *Executor) resolveCollision(ctx context.Context, logger *slog.Logger, scene *catalog.Scene, file *catalog.File, oldPath string) (string, int, error) {
	duplicateIndex := 0
	for {
		candidate, err := e.builder.TargetPath(ctx, scene, file, duplicateIndex)
		if err != nil {
			return "", duplicateIndex, err
		}
		if candidate == oldPath {
			return candidate, duplicateIndex, nil
		}
		if _, err := os.Stat(candidate); err != nil {
			return candidate, duplicateIndex, nil
		}

		duplicateIndex++
		if duplicateIndex > e.cfg.Rename.MaxDuplicateIterations {
			return "", duplicateIndex, services.Wrap(
				services.ErrValidation,
				"renamer",
				"resolve collision",
				fmt.Sprintf("no free target after %d attempts for %s", e.cfg.Rename.MaxDuplicateIterations, oldPath),
				nil,
			)
		}
		logger.Warn("file already exists at target, adding duplicate suffix",
			logging.String("path", candidate),
			logging.Int("duplicate_index", duplicateIndex),
		)
	}
}

// renameRelated renames filesystem siblings sharing the old file's stem to the
// new stem, keeping each sibling's extension. Failures are isolated per
// sibling.
func (e *Executor) renameRelated(ctx context.Context, logger *slog.Logger, oldPath, newPath string, dryRun bool) {
	if !e.cfg.Rename.RenameRelatedFiles {
		return
	}

	oldDir := filepath.Dir(oldPath)
	newDir := filepath.Dir(newPath)
	oldStem := stem(filepath.Base(oldPath))
	newStem := stem(filepath.Base(newPath))

	entries, err := os.ReadDir(oldDir)
	if err != nil {
		logger.Warn("cannot list directory for related files", logging.String("dir", oldDir), logging.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, oldStem+".") {
			continue
		}
		current := filepath.Join(oldDir, name)
		if current == oldPath {
			continue
		}

		target := filepath.Join(newDir, newStem+filepath.Ext(name))
		if target == current {
			continue
		}
		if _, err := os.Stat(target); err == nil {
			logger.Warn("related file already exists at target, skipping",
				logging.String("target", target),
				logging.String("related_file", current),
			)
			continue
		}

		logger.Info("renaming related file",
			logging.String("old_path", current),
			logging.String("new_path", target),
		)
		if dryRun {
			continue
		}

		if err := os.MkdirAll(newDir, 0o755); err != nil {
			logger.Error("cannot create target directory for related file", logging.String("dir", newDir), logging.Error(err))
			continue
		}
		if err := renameFile(current, target); err != nil {
			logger.Error("failed to rename related file",
				logging.String("old_path", current),
				logging.String("new_path", target),
				logging.Error(err),
			)
		}
	}
}

func stem(basename string) string {
	return strings.TrimSuffix(basename, filepath.Ext(basename))
}

// renameFile is swapped in tests to simulate filesystem failures.
var renameFile = os.Rename

// SetRenameForTests replaces the filesystem rename used for related files and
// returns a restore function.
func SetRenameForTests(fn func(oldpath, newpath string) error) (restore func()) {
	previous := renameFile
	renameFile = fn
	return func() { renameFile = previous }
}
