package internal_capture

import (
	"context"
	"sync"
)

// TrackKind distinguishes audio from video tracks on a media stream.
type TrackKind string

const (
	TrackAudio TrackKind = "audio"
	TrackVideo TrackKind = "video"
)

// BrowserFamily is the coarse browser classification used by capability
// detection.
type BrowserFamily string

const (
	BrowserChrome  BrowserFamily = "chrome"
	BrowserFirefox BrowserFamily = "firefox"
	BrowserSafari  BrowserFamily = "safari"
	BrowserEdge    BrowserFamily = "edge"
	BrowserUnknown BrowserFamily = "unknown"
)

// PlatformInfo describes the host runtime as reported by the capture
// provider.
type PlatformInfo struct {
	UserAgent     string
	OS            string // "windows", "linux", "darwin", ...
	SecureContext bool
}

// Features reports which capture APIs the platform exposes.
type Features struct {
	MediaRecorder  bool
	AudioGraph     bool
	DisplayCapture bool
}

// AudioConstraints mirror the processing options requested on microphone
// acquisition.
type AudioConstraints struct {
	EchoCancellation bool
	NoiseSuppression bool
	AutoGainControl  bool
	SampleRate       int
}

// DisplayConstraints control display-capture acquisition. Video must be
// requested because the platform only exposes system audio alongside a
// video track.
type DisplayConstraints struct {
	Video                 bool
	SuppressLocalPlayback bool
}

// MediaDevices is the capture provider. Implementations wrap the platform
// media layer; tests substitute fakes.
type MediaDevices interface {
	Platform() PlatformInfo
	Features() Features
	// SupportedEncodings lists the recording encodings the platform can
	// produce, most preferred first. The first entry is the platform
	// default.
	SupportedEncodings() []string
	GetUserMedia(ctx context.Context, c AudioConstraints) (*MediaStream, error)
	GetDisplayMedia(ctx context.Context, c DisplayConstraints) (*MediaStream, error)
}

// Track is a single media track delivering PCM16 little-endian frames.
// Pushing to a stopped track is a no-op; Stop closes the frame channel so
// consumers can drain and exit.
type Track struct {
	kind  TrackKind
	label string

	mu      sync.Mutex
	stopped bool
	frames  chan []byte
}

const defaultTrackBuffer = 64

// NewTrack creates a track with the default frame buffer.
func NewTrack(kind TrackKind, label string) *Track {
	return &Track{
		kind:   kind,
		label:  label,
		frames: make(chan []byte, defaultTrackBuffer),
	}
}

func (t *Track) Kind() TrackKind { return t.kind }

func (t *Track) Label() string { return t.label }

// Frames exposes the frame channel. It is closed when the track stops.
func (t *Track) Frames() <-chan []byte { return t.frames }

// Push queues a frame. Returns false if the track is stopped or the
// buffer is full (frames are dropped rather than blocking producers).
func (t *Track) Push(frame []byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	select {
	case t.frames <- frame:
		return true
	default:
		return false
	}
}

// Stop ends the track. Idempotent.
func (t *Track) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.stopped {
		t.stopped = true
		close(t.frames)
	}
}

// Stopped reports whether the track has been stopped.
func (t *Track) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// MediaStream is an ordered set of tracks produced by one acquisition.
type MediaStream struct {
	tracks []*Track
}

func NewMediaStream(tracks ...*Track) *MediaStream {
	return &MediaStream{tracks: tracks}
}

// Tracks returns all tracks on the stream.
func (s *MediaStream) Tracks() []*Track { return s.tracks }

// AudioTracks returns the audio tracks on the stream.
func (s *MediaStream) AudioTracks() []*Track {
	return s.tracksOf(TrackAudio)
}

// VideoTracks returns the video tracks on the stream.
func (s *MediaStream) VideoTracks() []*Track {
	return s.tracksOf(TrackVideo)
}

func (s *MediaStream) tracksOf(kind TrackKind) []*Track {
	out := make([]*Track, 0, len(s.tracks))
	for _, t := range s.tracks {
		if t.kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Stop stops every track on the stream.
func (s *MediaStream) Stop() {
	for _, t := range s.tracks {
		t.Stop()
	}
}
