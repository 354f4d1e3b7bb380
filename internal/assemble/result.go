package assemble

// Status is the terminal state of one document's processing attempt.
type Status int

const (
	StatusSuccess Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CompressionResult records the outcome for one document. CompressedBytes is
// recorded even when no space was saved; a negative saving is a valid
// outcome, not an error.
type CompressionResult struct {
	InputPath       string
	OutputPath      string
	OriginalBytes   int64
	CompressedBytes int64
	Status          Status
	ErrorDetail     string
}

// Ratio is the fraction of space saved: 1 - compressed/original.
func (r *CompressionResult) Ratio() float64 {
	if r.OriginalBytes <= 0 {
		return 0
	}
	return 1 - float64(r.CompressedBytes)/float64(r.OriginalBytes)
}

// SavedBytes is the absolute saving; negative when the output grew.
func (r *CompressionResult) SavedBytes() int64 {
	return r.OriginalBytes - r.CompressedBytes
}
