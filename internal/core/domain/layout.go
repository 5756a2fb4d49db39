package domain

import "path/filepath"

const (
	// LedgerDirName is the name of the internal workspace directory.
	LedgerDirName = ".ledger"

	// ReportsDirName is the name of the directory holding persisted artifact reports.
	ReportsDirName = "reports"

	// DefaultConfigFile is the name of the pipeline configuration file.
	DefaultConfigFile = "ledger.yaml"

	// DefaultBuildDir is the build directory used when the pipeline does not set one.
	DefaultBuildDir = "build"

	// MultiTypesDirName groups task outputs that are not tied to a single artifact type.
	MultiTypesDirName = "multi-types"

	// DefaultOutputName is the file or directory name used when a producer does not request one.
	DefaultOutputName = "out"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultReportsPath returns the default directory for persisted reports.
// It joins .ledger and reports.
func DefaultReportsPath() string {
	return filepath.Join(LedgerDirName, ReportsDirName)
}
