package main

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	resampler "github.com/tphakala/go-ppi-resampler"
)

// options is the resolved command configuration. Values come from flags,
// PPI_* environment variables and an optional config file, in that order of
// precedence.
type options struct {
	SrcRate int `mapstructure:"src-rate" yaml:"src-rate" validate:"gt=0"`
	TgtRate int `mapstructure:"tgt-rate" yaml:"tgt-rate" validate:"gt=0"`

	SrcFile string `mapstructure:"src-file" yaml:"src-file,omitempty" validate:"required_without=SrcDir,excluded_with=SrcDir"`
	TgtFile string `mapstructure:"tgt-file" yaml:"tgt-file,omitempty" validate:"required_with=SrcFile"`
	SrcDir  string `mapstructure:"src-dir" yaml:"src-dir,omitempty" validate:"required_without=SrcFile"`
	TgtDir  string `mapstructure:"tgt-dir" yaml:"tgt-dir,omitempty" validate:"required_with=SrcDir"`

	ImgFmt    string `mapstructure:"img-fmt" yaml:"img-fmt" default:"png" validate:"required,oneof=png jpg jpeg bmp tif tiff gif webp"`
	Recursive bool   `mapstructure:"recursive" yaml:"recursive"`

	Interpolation string `mapstructure:"interp-method" yaml:"interp-method,omitempty"`
	FilterShape   string `mapstructure:"filter-shape" yaml:"filter-shape,omitempty"`
	Resizer       string `mapstructure:"resizer" yaml:"resizer,omitempty"`

	Workers      int  `mapstructure:"workers" yaml:"workers" validate:"gte=0"`
	SaveFiltered bool `mapstructure:"save-filtered" yaml:"save-filtered"`
	DryRun       bool `mapstructure:"dry-run" yaml:"dry-run"`
	Verify       bool `mapstructure:"verify" yaml:"verify"`
	Verbose      bool `mapstructure:"verbose" yaml:"verbose"`
	PrintConfig  bool `mapstructure:"print-config" yaml:"-"`

	LogFile       string `mapstructure:"log-file" yaml:"log-file,omitempty"`
	LogMaxSize    int    `mapstructure:"log-max-size" yaml:"log-max-size" default:"10" validate:"gt=0"`
	LogMaxBackups int    `mapstructure:"log-max-backups" yaml:"log-max-backups" default:"3" validate:"gte=0"`
	LogMaxAge     int    `mapstructure:"log-max-age" yaml:"log-max-age" default:"28" validate:"gte=0"`
}

// defaultOptions returns options populated from their default tags.
func defaultOptions() options {
	var o options
	if err := defaults.Set(&o); err != nil {
		panic(fmt.Sprintf("options defaults: %v", err))
	}
	return o
}

// registerFlags declares every option on fs with defaults taken from the
// struct tags.
func registerFlags(fs *pflag.FlagSet) {
	d := defaultOptions()

	fs.IntP(keySrcRate, "a", 0, "source sample rate in ppi")
	fs.IntP(keyTgtRate, "b", 0, "target sample rate in ppi")
	fs.StringP(keySrcFile, "s", "", "source image file")
	fs.StringP(keyTgtFile, "t", "", "target image file")
	fs.StringP(keySrcDir, "r", "", "source imagery directory")
	fs.StringP(keyTgtDir, "o", "", "target imagery directory")
	fs.StringP(keyImgFmt, "m", d.ImgFmt, "image format by filename extension when reading a directory")
	fs.Bool(keyRecursive, d.Recursive, "descend into subdirectories of the source directory")
	fs.StringP(keyInterp, "i", "", "interpolation method [bicubic | bilinear]")
	fs.StringP(keyFilterShape, "f", "", "downsample filter shape [ideal | gaussian]")
	fs.String(keyResizer, "", "resize backend (default native)")
	fs.IntP(keyWorkers, "w", d.Workers, "concurrent images (0 uses all CPUs)")
	fs.Bool(keySaveFiltered, d.SaveFiltered, "also write the low-passed image before the final resize")
	fs.BoolP(keyDryRun, "x", d.DryRun, "resample but do not write images to disk")
	fs.BoolP(keyVerify, "y", d.Verify, "print runtime parameters and prompt to continue")
	fs.BoolP(keyVerbose, "z", d.Verbose, "log every target path and configuration decision")
	fs.BoolP(keyPrintConfig, "p", false, "print the effective configuration as YAML and exit")
	fs.StringP(keyConfig, "c", "", "config file (yaml, toml or json)")
	fs.String(keyLogFile, "", "also write logs to this file, rotated by size")
	fs.Int(keyLogMaxSize, d.LogMaxSize, "log file size in megabytes before rotation")
	fs.Int(keyLogMaxBackups, d.LogMaxBackups, "rotated log files to keep")
	fs.Int(keyLogMaxAge, d.LogMaxAge, "days to keep rotated log files")
}

// loadOptions merges flags, environment and the optional config file.
func loadOptions(v *viper.Viper, fs *pflag.FlagSet) (options, error) {
	if err := v.BindPFlags(fs); err != nil {
		return options{}, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return options{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	opts := defaultOptions()
	if err := v.Unmarshal(&opts); err != nil {
		return options{}, fmt.Errorf("decode config: %w", err)
	}
	if err := defaults.Set(&opts); err != nil {
		return options{}, fmt.Errorf("apply defaults: %w", err)
	}
	return opts, nil
}

// validate checks option combinations. Rate and token semantics are left to
// the resampler, which reports them as configuration errors.
func (o options) validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
}

// workers returns the effective worker count.
func (o options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// resamplerConfig maps options onto the library configuration.
func (o options) resamplerConfig() resampler.Config {
	return resampler.Config{
		SourceRate:    o.SrcRate,
		TargetRate:    o.TgtRate,
		Interpolation: o.Interpolation,
		FilterShape:   o.FilterShape,
		Resizer:       o.Resizer,
		KeepFiltered:  o.SaveFiltered,
	}
}

// yaml renders the options for --print-config.
func (o options) yaml() (string, error) {
	out, err := yaml.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(out), nil
}
