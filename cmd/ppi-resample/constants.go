package main

// Command identity.
const (
	appName     = "ppi-resample"
	envPrefix   = "PPI"
	versionText = "NFIR (NIST Fingerprint Image Resampler) version: %s\nresize backends: %s\n"
)

// Flag and config keys.
const (
	keySrcRate       = "src-rate"
	keyTgtRate       = "tgt-rate"
	keySrcFile       = "src-file"
	keyTgtFile       = "tgt-file"
	keySrcDir        = "src-dir"
	keyTgtDir        = "tgt-dir"
	keyImgFmt        = "img-fmt"
	keyRecursive     = "recursive"
	keyInterp        = "interp-method"
	keyFilterShape   = "filter-shape"
	keyResizer       = "resizer"
	keyWorkers       = "workers"
	keySaveFiltered  = "save-filtered"
	keyDryRun        = "dry-run"
	keyVerify        = "verify"
	keyVerbose       = "verbose"
	keyPrintConfig   = "print-config"
	keyConfig        = "config"
	keyLogFile       = "log-file"
	keyLogMaxSize    = "log-max-size"
	keyLogMaxBackups = "log-max-backups"
	keyLogMaxAge     = "log-max-age"
)

// Output naming.
const (
	targetNameFormat = "%s-%04dto%04dppi%s"
	filteredSuffix   = "-filtered"
	softwareKeyword  = "Software"
	commentKeyword   = "Comment"
)

// Filesystem.
const (
	dirPerm = 0o755
)
