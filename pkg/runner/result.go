package runner

// FileOutcome is what happened to one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Original is the file content as read.
	Original string

	// Formatted is the canonical rendering of the parsed document. Empty
	// when the file failed to parse.
	Formatted string

	// Keys is the number of items in the file.
	Keys int

	// Changed reports whether Formatted differs from Original.
	Changed bool

	// Written reports whether the file was rewritten on disk.
	Written bool

	// Error is set if the file could not be read, parsed or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files read and parsed without error.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesChanged is the number of files whose formatting differs.
	FilesChanged int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// KeysTotal is the number of items across all parsed files.
	KeysTotal int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	Stats Stats

	// DryRun mirrors the option the run was made with.
	DryRun bool
}

// HasFailures reports whether any file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasChanges reports whether any file is not in canonical form. After a
// non-dry-run format this counts files that were rewritten.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.KeysTotal += outcome.Keys
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
