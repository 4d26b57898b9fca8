package qtest

import "errors"

var (
	// ErrUnknownCommand indicates that the command name is not registered.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidArgument indicates that a command received a malformed argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownOption indicates that the option name is not supported.
	ErrUnknownOption = errors.New("unknown option")
)

var (
	// ErrNoQueue indicates that the command needs a current queue and there is none.
	ErrNoQueue = errors.New("no current queue, use 'new' first")

	// ErrAllocFailed indicates that a queue could not be allocated although allocation failures were not enabled.
	ErrAllocFailed = errors.New("queue allocation failed")

	// ErrInsertFailed indicates that an insertion failed although allocation failures were not enabled.
	ErrInsertFailed = errors.New("insertion failed")

	// ErrRemoveFailed indicates that a removal on a non-empty queue returned nothing.
	ErrRemoveFailed = errors.New("removal from non-empty queue failed")

	// ErrValueMismatch indicates that a removed value differs from the expected one.
	ErrValueMismatch = errors.New("removed value mismatch")

	// ErrNotSorted indicates that the queue is not in ascending order where it has to be.
	ErrNotSorted = errors.New("queue is not sorted in ascending order")

	// ErrModelMismatch indicates that the queue diverged from the reference model.
	ErrModelMismatch = errors.New("queue differs from reference model")

	// ErrTimeLimit indicates that a queue operation ran longer than the time limit.
	ErrTimeLimit = errors.New("time limit exceeded")

	// ErrLeak indicates that blocks were still allocated after every queue was freed.
	ErrLeak = errors.New("allocated blocks not freed")

	// ErrTooManyErrors indicates that the error budget was used up.
	ErrTooManyErrors = errors.New("error limit reached")
)

// reportedError wraps an error whose failures were already reported and charged
// against the error budget, e.g. by the commands of a sourced file.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }
