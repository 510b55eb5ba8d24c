package main

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	resampler "github.com/tphakala/go-ppi-resampler"
	"github.com/tphakala/go-ppi-resampler/internal/codec"
	"github.com/tphakala/go-ppi-resampler/internal/testutil"
)

func writeImage(t *testing.T, path string, img *image.Gray) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), dirPerm))
	require.NoError(t, codec.EncodeFile(path, img, nil))
}

func TestTargetFilename(t *testing.T) {
	tests := []struct {
		src      string
		from, to int
		want     string
	}{
		{"/data/print.png", 1000, 500, "print-1000to0500ppi.png"},
		{"scan.v2.bmp", 600, 500, "scan.v2-0600to0500ppi.bmp"},
		{"noext", 1200, 500, "noext-1200to0500ppi"},
		{"up.tif", 500, 1000, "up-0500to1000ppi.tif"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, targetFilename(tt.src, tt.from, tt.to))
		})
	}
}

func TestFilteredFilename(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "a-1000to0500ppi-filtered.png"),
		filteredFilename(filepath.Join("out", "a-1000to0500ppi.png")))
}

func TestCollectJobs(t *testing.T) {
	src := t.TempDir()
	img := testutil.Uniform(4, 4, 200)
	writeImage(t, filepath.Join(src, "b.png"), img)
	writeImage(t, filepath.Join(src, "a.png"), img)
	writeImage(t, filepath.Join(src, "c.bmp"), img)
	writeImage(t, filepath.Join(src, "nested", "d.png"), img)

	o := options{SrcRate: 1000, TgtRate: 500, SrcDir: src, TgtDir: "out", ImgFmt: "png"}

	t.Run("flat", func(t *testing.T) {
		jobs, err := collectJobs(o)
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, filepath.Join(src, "a.png"), jobs[0].src)
		assert.Equal(t, filepath.Join("out", "a-1000to0500ppi.png"), jobs[0].dst)
		assert.Equal(t, filepath.Join(src, "b.png"), jobs[1].src)
	})

	t.Run("recursive", func(t *testing.T) {
		r := o
		r.Recursive = true
		jobs, err := collectJobs(r)
		require.NoError(t, err)
		require.Len(t, jobs, 3)
		assert.Equal(t, filepath.Join("out", "nested", "d-1000to0500ppi.png"), jobs[2].dst)
	})

	t.Run("other_format", func(t *testing.T) {
		b := o
		b.ImgFmt = "bmp"
		jobs, err := collectJobs(b)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, filepath.Join("out", "c-1000to0500ppi.bmp"), jobs[0].dst)
	})
}

func TestCollectJobs_SingleFile(t *testing.T) {
	jobs, err := collectJobs(options{SrcFile: "in.png", TgtFile: "out.png"})
	require.NoError(t, err)
	assert.Equal(t, []job{{src: "in.png", dst: "out.png"}}, jobs)
}

func TestCollectJobs_BadDir(t *testing.T) {
	_, err := collectJobs(options{SrcDir: filepath.Join(t.TempDir(), "missing"), ImgFmt: "png"})
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.png")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err = collectJobs(options{SrcDir: file, ImgFmt: "png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func newTestBatch(t *testing.T, o options) (*batch, *observer.ObservedLogs) {
	t.Helper()
	r, err := resampler.New(o.resamplerConfig())
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	return &batch{r: r, opts: o, logger: zap.New(core), version: resampler.Version}, logs
}

func TestBatchRun(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeImage(t, filepath.Join(src, "a.png"), testutil.Noise(40, 30, 1))
	writeImage(t, filepath.Join(src, "b.png"), testutil.Ridges(40, 30, 8))
	require.NoError(t, os.WriteFile(filepath.Join(src, "broken.png"), []byte("not a png"), 0o600))

	o := options{SrcRate: 1000, TgtRate: 500, SrcDir: src, TgtDir: dst, ImgFmt: "png", Workers: 2, SaveFiltered: true}
	jobs, err := collectJobs(o)
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	b, logs := newTestBatch(t, o)
	stats, err := b.run(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.resampled)
	assert.Equal(t, int64(1), stats.failed)
	assert.Equal(t, 1, logs.FilterMessage("image skipped").Len())

	out := filepath.Join(dst, "a-1000to0500ppi.png")
	img, _, err := codec.DecodeFile(out)
	require.NoError(t, err)
	testutil.AssertSize(t, img, 20, 15)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	meta, err := codec.ReadPNGMetadata(data)
	require.NoError(t, err)
	assert.Equal(t, 500, meta.PPI)
	require.Len(t, meta.Text, 2)
	assert.Equal(t, softwareKeyword, meta.Text[0].Keyword)
	assert.Contains(t, meta.Text[1].Value, "downsample")

	filtered, _, err := codec.DecodeFile(filepath.Join(dst, "a-1000to0500ppi-filtered.png"))
	require.NoError(t, err)
	testutil.AssertSize(t, filtered, 40, 30)
}

func TestBatchRun_DryRun(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeImage(t, filepath.Join(src, "a.png"), testutil.Noise(20, 20, 2))

	o := options{SrcRate: 500, TgtRate: 1000, SrcDir: src, TgtDir: dst, ImgFmt: "png", DryRun: true}
	jobs, err := collectJobs(o)
	require.NoError(t, err)

	b, logs := newTestBatch(t, o)
	stats, err := b.run(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.resampled)
	assert.Equal(t, 1, logs.FilterMessage("dry-run target").Len())

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBatchRun_Cancelled(t *testing.T) {
	src := t.TempDir()
	writeImage(t, filepath.Join(src, "a.png"), testutil.Noise(20, 20, 3))

	o := options{SrcRate: 1000, TgtRate: 500, SrcDir: src, TgtDir: t.TempDir(), ImgFmt: "png", Workers: 1}
	jobs, err := collectJobs(o)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b, _ := newTestBatch(t, o)
	stats, err := b.run(ctx, jobs)
	require.Error(t, err)
	assert.Zero(t, stats.resampled)
}
