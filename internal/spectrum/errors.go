package spectrum

import "errors"

var (
	// ErrIndexOutOfRange reports a spectrum or point index that does not exist.
	ErrIndexOutOfRange = errors.New("spectrum: index out of range")

	// ErrStaleSelection reports a selected spectrum index that no longer
	// addresses a spectrum.
	ErrStaleSelection = errors.New("spectrum: stale selection")

	// ErrLastSpectrum is returned when removing the only remaining spectrum.
	ErrLastSpectrum = errors.New("spectrum: cannot remove the last spectrum")

	ErrInvalidColor     = errors.New("spectrum: invalid color")
	ErrInvalidClockTime = errors.New("spectrum: invalid clock time")

	// ErrSessionClosed is returned by session operations after Close.
	ErrSessionClosed = errors.New("spectrum: session closed")
)
