package commons

import "errors"

// Error categories shared across the recording workflow. Handlers map these
// onto HTTP statuses; the capture and transcription layers decide which
// failures degrade instead of surfacing.
var (
	// ErrConfiguration indicates a missing or invalid credential/setting.
	// Not retryable without operator action.
	ErrConfiguration = errors.New("configuration error")

	// ErrPermission indicates the user or platform refused access to a
	// capability (microphone, display capture, calendar scope).
	ErrPermission = errors.New("permission denied")

	// ErrThrottled indicates an upstream rate or quota limit.
	ErrThrottled = errors.New("rate or quota exceeded")

	// ErrTransient indicates a network or upstream failure worth retrying.
	ErrTransient = errors.New("transient upstream failure")

	// ErrNotFound indicates a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrUnsupported indicates the platform cannot perform the operation
	// at all (e.g. no recording encoding available).
	ErrUnsupported = errors.New("unsupported on this platform")
)

// IsConfiguration reports whether err belongs to the configuration category.
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }

// IsThrottled reports whether err belongs to the throttling category.
func IsThrottled(err error) bool { return errors.Is(err, ErrThrottled) }

// IsNotFound reports whether err belongs to the not-found category.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsUnsupported reports whether err belongs to the unsupported category.
func IsUnsupported(err error) bool { return errors.Is(err, ErrUnsupported) }

// IsPermission reports whether err belongs to the permission category.
func IsPermission(err error) bool { return errors.Is(err, ErrPermission) }
