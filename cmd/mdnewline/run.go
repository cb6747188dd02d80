package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	mdnewline "github.com/jamesainslie/go-mdnewline"
	"github.com/jamesainslie/go-mdnewline/internal/verify"
	"github.com/jamesainslie/go-mdnewline/internal/watch"
)

var errWouldChange = errors.New("files would change")

type runner struct {
	proc     *mdnewline.Processor
	settings settings
	logger   *slog.Logger
	out      io.Writer
}

func run(cmd *cobra.Command, s settings, args []string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), s.logLevel)
	if err != nil {
		return err
	}

	r := &runner{
		proc: mdnewline.New(
			mdnewline.WithLogger(logger),
			mdnewline.WithAbbreviations(s.abbreviations...),
			mdnewline.WithDisabledRules(s.disabledRules...),
		),
		settings: s,
		logger:   logger,
		out:      cmd.OutOrStdout(),
	}
	ctx := cmd.Context()

	if len(args) == 0 {
		if s.write {
			return errors.New("--write needs at least one file or directory")
		}
		return r.stdin(ctx, cmd.InOrStdin())
	}

	files, dirs, err := collect(args)
	if err != nil {
		return err
	}

	var (
		errs    []error
		changed int
	)
	for _, path := range files {
		ok, err := r.file(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			changed++
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	if s.watch {
		return r.watch(ctx, append(dirs, files...))
	}
	if s.check && changed > 0 {
		return fmt.Errorf("%w: %d", errWouldChange, changed)
	}
	return nil
}

// stdin streams stdin to the output. Verification and --check need the whole
// document, so they buffer it instead.
func (r *runner) stdin(ctx context.Context, in io.Reader) error {
	if !r.settings.verify && !r.settings.check {
		return r.proc.ProcessReader(ctx, in, r.out)
	}

	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("%w: %w", mdnewline.ErrReadFailed, err)
	}
	dst := r.proc.Process(string(src))

	if r.settings.verify {
		if err := verify.Compare(src, []byte(dst)); err != nil {
			return fmt.Errorf("<stdin>: %w", err)
		}
	}
	if r.settings.check {
		if dst != string(src) {
			return errWouldChange
		}
		return nil
	}
	if _, err := io.WriteString(r.out, dst); err != nil {
		return fmt.Errorf("%w: %w", mdnewline.ErrWriteFailed, err)
	}
	return nil
}

// file processes one file and reports whether its content changed. Without
// --write or --check the result is printed.
func (r *runner) file(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	dst := r.proc.Process(string(src))
	changed := dst != string(src)

	if changed && r.settings.verify {
		if err := verify.Compare(src, []byte(dst)); err != nil {
			return false, fmt.Errorf("%s: %w", path, err)
		}
	}

	switch {
	case r.settings.check:
		if changed {
			fmt.Fprintln(r.out, path)
		}
	case r.settings.write:
		if !changed {
			return false, nil
		}
		if err := os.WriteFile(path, []byte(dst), info.Mode().Perm()); err != nil {
			return false, err
		}
		r.logger.Info("rewrote file", "path", path)
	default:
		if _, err := io.WriteString(r.out, dst); err != nil {
			return false, fmt.Errorf("%w: %w", mdnewline.ErrWriteFailed, err)
		}
	}
	return changed, nil
}

// watch rewrites files as they change until ctx is done.
func (r *runner) watch(ctx context.Context, paths []string) error {
	w, err := watch.New(nil, r.logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	events, err := w.Watch(ctx, paths...)
	if err != nil {
		return err
	}
	r.logger.Info("watching", "paths", len(paths))

	for path := range events {
		if _, err := r.file(path); err != nil {
			r.logger.Error("rewrite failed", "path", path, "error", err)
		}
	}
	return nil
}

// collect expands args into markdown files and the directories searched for
// them. Files named explicitly are kept whatever their extension. Hidden
// directories below an argument are skipped.
func collect(args []string) (files, dirs []string, err error) {
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				dirs = append(dirs, path)
				return nil
			}
			if slices.Contains(watch.DefaultExtensions, filepath.Ext(path)) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	}
	return files, dirs, nil
}
