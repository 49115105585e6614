package ui

// ProgressMsg represents a progress update from the acoustic analysis pipeline.
type ProgressMsg struct {
	StageIndex int     // 0-3, index into the four pipeline stages
	StageName  string  // "band-filter", "envelope", "decay", "parameters"
	Progress   float64 // 0.0 to 1.0 across the whole pipeline
}

// FileStartMsg indicates a new file has started analysis.
type FileStartMsg struct {
	FileIndex int
	FileName  string
}

// FileCompleteMsg indicates a file has finished analysis.
type FileCompleteMsg struct {
	FileIndex int
	BandCount int
	Error     error
}

// AllCompleteMsg indicates all files have been analyzed.
type AllCompleteMsg struct{}
