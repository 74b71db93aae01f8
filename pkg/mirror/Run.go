// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"github.com/navwar/gomirror/pkg/hash"
	"github.com/navwar/gomirror/pkg/log"
)

// Run performs one pass: files missing or changed in the replica are copied from the source,
// then replica files missing from the source are deleted.
// Per-file failures become error events and the pass continues.
// The returned error is a *ConfigurationError when a root directory is unusable,
// or the context error when ctx is cancelled between two files.
func Run(ctx context.Context, input *RunInput) ([]Event, error) {
	p := &pass{
		config: input.Config,
		fs:     input.FileSystem,
		sink:   input.Sink,
		logger: input.Logger,
		clock:  input.Clock,
		debug:  input.Debug,

		directories: map[string]struct{}{},
	}
	if p.fs == nil {
		p.fs = afero.NewOsFs()
	}
	if p.clock == nil {
		p.clock = clockwork.NewRealClock()
	}

	p.log("Synchronizing", map[string]interface{}{
		"src": p.config.SourceDirectory,
		"dst": p.config.ReplicaDirectory,
	})

	if err := p.checkRoot("source", p.config.SourceDirectory); err != nil {
		return nil, err
	}
	if err := p.checkRoot("replica", p.config.ReplicaDirectory); err != nil {
		return nil, err
	}

	sourceFiles, err := p.enumerate("source", p.config.SourceDirectory, true)
	if err != nil {
		return p.events, err
	}
	for _, f := range sourceFiles {
		if err := ctx.Err(); err != nil {
			return p.events, err
		}
		p.reconcileAddition(f)
	}

	// enumerated after the additions so that files created above are present in both trees
	replicaFiles, err := p.enumerate("replica", p.config.ReplicaDirectory, false)
	if err != nil {
		return p.events, err
	}
	for _, f := range replicaFiles {
		if err := ctx.Err(); err != nil {
			return p.events, err
		}
		p.reconcileDeletion(f)
	}

	counts := Count(p.events)
	p.log("Done synchronizing", map[string]interface{}{
		"src":     p.config.SourceDirectory,
		"dst":     p.config.ReplicaDirectory,
		"created": counts[ActionCreated],
		"updated": counts[ActionUpdated],
		"deleted": counts[ActionDeleted],
		"errors":  counts[ActionError],
	})

	return p.events, nil
}

type pass struct {
	config Config
	fs     afero.Fs
	sink   Sink
	logger log.Logger
	clock  clockwork.Clock
	debug  bool
	events []Event

	directories map[string]struct{} // replica directories known to be real directories
}

func (p *pass) log(msg string, fields ...map[string]interface{}) {
	if p.logger != nil {
		_ = p.logger.Log(msg, fields...)
	}
}

func (p *pass) emit(action Action, relativePath string, err error) {
	e := Event{
		Timestamp:    p.clock.Now(),
		Action:       action,
		RelativePath: relativePath,
		Err:          err,
	}
	p.events = append(p.events, e)

	if action == ActionError {
		p.log("Error synchronizing file", map[string]interface{}{
			"path": relativePath,
			"err":  err.Error(),
		})
	}

	if p.sink != nil {
		if sinkError := p.sink.Write(e); sinkError != nil {
			p.log("Error writing event", map[string]interface{}{
				"action": string(action),
				"path":   relativePath,
				"err":    sinkError.Error(),
			})
		}
	}
}

func (p *pass) fail(op string, relativePath string, err error) {
	p.emit(ActionError, relativePath, &FileOperationError{
		Op:           op,
		RelativePath: relativePath,
		Err:          err,
	})
}

func (p *pass) checkRoot(name string, root string) error {
	if !filepath.IsAbs(root) {
		return &ConfigurationError{Name: name, Path: root, Err: fmt.Errorf("path is not absolute")}
	}
	fi, err := p.fs.Stat(root)
	if err != nil {
		return &ConfigurationError{Name: name, Path: root, Err: err}
	}
	if !fi.IsDir() {
		return &ConfigurationError{Name: name, Path: root, Err: errNotDirectory}
	}
	return nil
}

// enumerate walks root and returns every file below it in lexical order.
// Directories are never returned, so empty directories take no part in a pass.
// When followLinks is false, symbolic links and irregular files are returned as they are,
// so that they can be removed without touching what they point to.
func (p *pass) enumerate(name string, root string, followLinks bool) ([]FileEntry, error) {
	walkRoot := root
	if lstater, ok := p.fs.(afero.Lstater); ok {
		if fi, _, err := lstater.LstatIfPossible(root); err == nil && fi.Mode()&os.ModeSymlink != 0 {
			// a trailing separator makes lstat follow a symbolic link at the root
			walkRoot = root + string(filepath.Separator)
		}
	}

	files := []FileEntry{}
	err := afero.Walk(p.fs, walkRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == walkRoot {
				return &ConfigurationError{Name: name, Path: root, Err: err}
			}
			p.fail("walk", p.relative(root, path), err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		relativePath := p.relative(root, path)

		if !followLinks && !info.Mode().IsRegular() {
			files = append(files, FileEntry{
				RelativePath: relativePath,
				AbsolutePath: path,
			})
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			target, err := p.fs.Stat(path)
			if err != nil {
				p.fail("walk", relativePath, fmt.Errorf("error resolving symbolic link: %w", err))
				return nil
			}
			if target.IsDir() {
				return nil
			}
		} else if !info.Mode().IsRegular() {
			p.log("Skipping irregular file", map[string]interface{}{
				"path": path,
				"mode": info.Mode().String(),
			})
			return nil
		}

		files = append(files, FileEntry{
			RelativePath: relativePath,
			AbsolutePath: path,
		})
		return nil
	})
	if err != nil {
		return files, err
	}
	return files, nil
}

func (p *pass) relative(root string, path string) string {
	relativePath, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return relativePath
}

func (p *pass) reconcileAddition(f FileEntry) {
	replicaPath := filepath.Join(p.config.ReplicaDirectory, f.RelativePath)

	if err := p.clearParents(f.RelativePath); err != nil {
		p.fail("copy", f.RelativePath, err)
		return
	}

	action := ActionUpdated
	replicaFileInfo, err := lstat(p.fs, replicaPath)
	switch {
	case err != nil && isNotExist(err):
		action = ActionCreated
	case err != nil:
		p.fail("stat", f.RelativePath, err)
		return
	case replicaFileInfo.IsDir():
		// an empty directory left behind by earlier deletions gives way to the file
		if err := p.fs.Remove(replicaPath); err != nil {
			p.fail("copy", f.RelativePath, fmt.Errorf("replica path %q is a directory: %w", replicaPath, err))
			return
		}
		action = ActionCreated
	case !replicaFileInfo.Mode().IsRegular():
		// links and special files are replaced, never written through
		if err := p.fs.Remove(replicaPath); err != nil {
			p.fail("copy", f.RelativePath, fmt.Errorf("error removing %q: %w", replicaPath, err))
			return
		}
		action = ActionCreated
	default:
		equal, err := hash.Equal(p.fs, f.AbsolutePath, replicaPath)
		if err != nil {
			p.fail("hash", f.RelativePath, err)
			return
		}
		if equal {
			return
		}
	}

	var logger log.Logger
	if p.debug {
		logger = p.logger
	}
	_, err = Copy(&CopyInput{
		FileSystem:      p.fs,
		Source:          f.AbsolutePath,
		Destination:     replicaPath,
		Parents:         true,
		PreserveModTime: true,
		Logger:          logger,
	})
	if err != nil {
		p.fail("copy", f.RelativePath, err)
		return
	}

	p.emit(action, f.RelativePath, nil)
}

// clearParents removes any file or link in the replica that stands where
// the source has a parent directory of relativePath.
func (p *pass) clearParents(relativePath string) error {
	parent := filepath.Dir(relativePath)
	if parent == "." {
		return nil
	}

	current := p.config.ReplicaDirectory
	for _, element := range strings.Split(parent, string(filepath.Separator)) {
		current = filepath.Join(current, element)
		if _, ok := p.directories[current]; ok {
			continue
		}

		fi, err := lstat(p.fs, current)
		if err != nil {
			if isNotExist(err) {
				return nil
			}
			return fmt.Errorf("error stating replica directory %q: %w", current, err)
		}
		if fi.IsDir() {
			p.directories[current] = struct{}{}
			continue
		}

		if err := p.fs.Remove(current); err != nil {
			return fmt.Errorf("error removing %q from the replica: %w", current, err)
		}
		p.emit(ActionDeleted, p.relative(p.config.ReplicaDirectory, current), nil)
		// nothing exists below a path that was just removed
		return nil
	}
	return nil
}

// lstat does not follow a symbolic link at name when the filesystem supports it.
func lstat(fs afero.Fs, name string) (os.FileInfo, error) {
	if lstater, ok := fs.(afero.Lstater); ok {
		fi, _, err := lstater.LstatIfPossible(name)
		return fi, err
	}
	return fs.Stat(name)
}

func (p *pass) reconcileDeletion(f FileEntry) {
	sourcePath := filepath.Join(p.config.SourceDirectory, f.RelativePath)

	sourceFileInfo, err := p.fs.Stat(sourcePath)
	if err == nil && !sourceFileInfo.IsDir() {
		return
	}
	if err != nil && !isNotExist(err) {
		// the source file may still exist, so the replica copy is kept
		p.fail("stat", f.RelativePath, err)
		return
	}

	if p.debug {
		p.log("Deleting file", map[string]interface{}{
			"path": f.AbsolutePath,
		})
	}

	removed, err := RemoveIfExists(p.fs, f.AbsolutePath)
	if err != nil {
		p.fail("delete", f.RelativePath, err)
		return
	}
	if removed {
		p.emit(ActionDeleted, f.RelativePath, nil)
	}
}
