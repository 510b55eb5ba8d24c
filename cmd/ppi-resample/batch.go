package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/bmatcuk/doublestar"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	resampler "github.com/tphakala/go-ppi-resampler"
	"github.com/tphakala/go-ppi-resampler/internal/codec"
)

// job pairs a source image with its target path.
type job struct {
	src string
	dst string
}

// batchStats summarizes a batch run.
type batchStats struct {
	resampled int64
	failed    int64
}

// targetFilename appends the rate pair to the base name of src, keeping its
// extension: print.png becomes print-1000to0500ppi.png.
func targetFilename(src string, srcRate, tgtRate int) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	return fmt.Sprintf(targetNameFormat, strings.TrimSuffix(base, ext), srcRate, tgtRate, ext)
}

// filteredFilename derives the path of the low-passed intermediate image.
func filteredFilename(dst string) string {
	ext := filepath.Ext(dst)
	return strings.TrimSuffix(dst, ext) + filteredSuffix + ext
}

// collectJobs lists the images to process. A single source file maps to the
// target file; a source directory is globbed for the image format and each
// match maps into the target directory, keeping relative subdirectories.
// Directory matches are returned in lexical order.
func collectJobs(o options) ([]job, error) {
	if o.SrcFile != "" {
		return []job{{src: o.SrcFile, dst: o.TgtFile}}, nil
	}

	info, err := os.Stat(o.SrcDir)
	if err != nil {
		return nil, fmt.Errorf("source dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source dir: %s is not a directory", o.SrcDir)
	}

	pattern := "*." + o.ImgFmt
	if o.Recursive {
		pattern = "**/" + pattern
	}
	matches, err := doublestar.Glob(filepath.Join(o.SrcDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)

	jobs := make([]job, 0, len(matches))
	for _, m := range matches {
		if fi, err := os.Stat(m); err != nil || fi.IsDir() {
			continue
		}
		rel, err := filepath.Rel(o.SrcDir, m)
		if err != nil {
			return nil, fmt.Errorf("relative path of %s: %w", m, err)
		}
		dst := filepath.Join(o.TgtDir, filepath.Dir(rel), targetFilename(m, o.SrcRate, o.TgtRate))
		jobs = append(jobs, job{src: m, dst: dst})
	}
	return jobs, nil
}

// batch runs jobs through one shared resampler.
type batch struct {
	r       resampler.Resampler
	opts    options
	logger  *zap.Logger
	version string
}

// run processes jobs with a bounded worker pool. Per-image failures are
// logged and counted; a configuration error stops the batch.
func (b *batch) run(ctx context.Context, jobs []job) (batchStats, error) {
	var resampled, failed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.workers())

	for _, j := range jobs {
		g.Go(func() error {
			err := b.process(ctx, j)
			switch {
			case err == nil:
				resampled.Add(1)
				return nil
			case resampler.IsConfigError(err), ctx.Err() != nil:
				return err
			default:
				failed.Add(1)
				b.logger.Warn("image skipped", zap.String("src", j.src), zap.Error(err))
				return nil
			}
		})
	}

	err := g.Wait()
	return batchStats{resampled: resampled.Load(), failed: failed.Load()}, err
}

// process resamples one image and writes the result unless dry-running.
func (b *batch) process(ctx context.Context, j job) error {
	img, _, err := codec.DecodeFile(j.src)
	if err != nil {
		return fmt.Errorf("cannot open image %s: %w", j.src, err)
	}

	res, err := b.r.ResampleContext(ctx, img)
	if err != nil {
		return fmt.Errorf("resample %s: %w", j.src, err)
	}
	for _, line := range res.Log {
		b.logger.Debug(line, zap.String("src", j.src))
	}

	if b.opts.DryRun {
		b.logger.Debug("dry-run target", zap.String("dst", j.dst))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(j.dst), dirPerm); err != nil {
		return fmt.Errorf("create target dir: %w", err)
	}
	if err := codec.EncodeFile(j.dst, res.Image, b.metadata(res, b.opts.TgtRate)); err != nil {
		return fmt.Errorf("write %s: %w", j.dst, err)
	}
	if res.Filtered != nil {
		path := filteredFilename(j.dst)
		if err := codec.EncodeFile(path, res.Filtered, b.metadata(res, b.opts.SrcRate)); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	b.logger.Debug("target written", zap.String("dst", j.dst))
	return nil
}

// metadata describes an output image sampled at ppi.
func (b *batch) metadata(res *resampler.Result, ppi int) *codec.Metadata {
	return &codec.Metadata{
		PPI: ppi,
		Text: []codec.TextEntry{
			{Keyword: softwareKeyword, Value: appName + " " + b.version},
			{Keyword: commentKeyword, Value: strings.Join(res.Log, "\n")},
		},
	}
}
