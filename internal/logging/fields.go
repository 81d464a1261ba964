package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldConfig  = "config"
	FieldDryRun  = "dry_run"
	FieldJobs    = "jobs"
	FieldMode    = "mode"
	FieldColor   = "color"
	FieldWarning = "warning"

	// Dotenv fields.
	FieldKey  = "key"
	FieldKeys = "keys"

	// Process fields.
	FieldCommand  = "cmd"
	FieldExitCode = "exit_code"
	FieldDuration = "duration"
	FieldProvider = "provider"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
