package obfuscate

// IndexedResult is the encoded text of a WorkUnit
type IndexedResult struct {
	// Index the index of the WorkUnit
	Index int
	// Value the encoded chunk
	Value string
	// Err the reason the chunk could not be encoded
	Err error
}

// Result represents the progress details of a Task
type Result struct {
	// Status the status of the operation
	Status Status

	// Error the error details of a failed Task
	Error error

	Metadata MetadataMap
}
