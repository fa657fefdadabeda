package obfuscate

// Status the state of a task or of an Encode/Decode call
type Status int8

const (
	// Queued the task is waiting for an engine worker
	Queued Status = iota
	// InProgress the task is being processed
	InProgress
	// Completed the operation has finished successfully
	Completed
	// Cancelled the operation has been stopped by its context
	Cancelled
	// Failed the operation has stopped on an error
	Failed
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case Queued:
		return "queued"
	case InProgress:
		return "in progress"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// IsFinal returns true if the status can no longer change
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled || s == Failed
}
