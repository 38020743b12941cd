package generator

// ProgressReporter provides callbacks for reporting generation progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryComplete is called once the selected file list is known.
	OnDiscoveryComplete(files int)

	// OnFileProcessingStart is called before parsing files.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file is parsed.
	OnFileProcessed(fileName string)

	// OnComplete is called when the document has been written.
	OnComplete(result *Result)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryComplete(files int)        {}
func (n *NoOpProgressReporter) OnFileProcessingStart(totalFiles int) {}
func (n *NoOpProgressReporter) OnFileProcessed(fileName string)      {}
func (n *NoOpProgressReporter) OnComplete(result *Result)            {}
