package obfuscate

// RequestChannel is the channel on which a Tap sends Tasks to the Engine
type RequestChannel chan *Task

// Tap is the interface for the types responsible to send tasks to an Engine
type Tap interface {
	// Open opens the tap and starts pushing tasks into the request channel.
	// The engine will automatically open the tap, so there is no need for you to explicitly call this method.
	// NOTE: The implementation of this function SHOULD NOT be blocking.
	Open()
	// Close closes the tap and stops pushing tasks into the request channel.
	// The engine will automatically close the tap, so there is no need for you to explicitly call this method.
	// NOTE: Make sure the implementation of this method blocks until all the tap's internal resources are released
	// and closes the request channel.
	Close()
	// IsOpen returns true if the tap is open
	IsOpen() bool
	// Requests returns the channel the tasks are sent on
	Requests() RequestChannel
}
