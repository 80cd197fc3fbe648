package internal_capture

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/utils"
)

// encodingPreference is the descending-preference list for the recording
// encoding. When none is supported the platform default (first reported
// encoding) is used.
var encodingPreference = []string{
	"audio/webm;codecs=opus",
	"audio/webm",
	"audio/mp4",
}

const (
	defaultChunkInterval = time.Second // progressive chunk slices
	defaultMeterInterval = 100 * time.Millisecond
)

// LocalRecording is a finalized in-memory capture. It must be persisted or
// discarded before the session ends.
type LocalRecording struct {
	ID        string
	Audio     []byte
	MimeType  string
	Duration  float64 // seconds
	CreatedAt time.Time
	Name      string
	Mode      RecordingMode
}

// Recorder wraps one stream in a chunked recording session. A single
// Recorder allows at most one active session at a time.
type Recorder struct {
	devices MediaDevices
	logger  commons.Logger

	mu        sync.Mutex
	recording bool
	stream    *MediaStream
	mode      RecordingMode
	mimeType  string
	startTime time.Time
	chunks    [][]byte
	current   []byte
	lastFrame []byte
	level     float32

	stopMeter chan struct{}
	done      chan struct{}
	meterDone chan struct{}

	// injectable for tests
	clock         func() time.Time
	chunkInterval time.Duration
	meterInterval time.Duration
}

// NewRecorder builds a recorder over the given capture provider.
func NewRecorder(devices MediaDevices, logger commons.Logger) *Recorder {
	return &Recorder{
		devices:       devices,
		logger:        logger,
		clock:         time.Now,
		chunkInterval: defaultChunkInterval,
		meterInterval: defaultMeterInterval,
	}
}

// selectEncoding picks the first supported encoding from the preference
// list, falling back to the platform default.
func selectEncoding(supported []string) (string, error) {
	if len(supported) == 0 {
		return "", fmt.Errorf("%w: no recording encoding available", commons.ErrUnsupported)
	}
	set := make(map[string]bool, len(supported))
	for _, s := range supported {
		set[strings.ToLower(s)] = true
	}
	for _, pref := range encodingPreference {
		if set[pref] {
			return pref, nil
		}
	}
	return supported[0], nil
}

// Start begins recording the stream. Fails if a session is already active,
// the stream has no audio track, or no encoding can be selected.
func (r *Recorder) Start(stream *MediaStream, mode RecordingMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("a recording session is already active")
	}

	audio := stream.AudioTracks()
	if len(audio) == 0 {
		return fmt.Errorf("%w: stream has no audio track", commons.ErrUnsupported)
	}

	mimeType, err := selectEncoding(r.devices.SupportedEncodings())
	if err != nil {
		return err
	}

	r.recording = true
	r.stream = stream
	r.mode = mode
	r.mimeType = mimeType
	r.startTime = r.clock()
	r.chunks = nil
	r.current = nil
	r.lastFrame = nil
	r.level = 0
	r.stopMeter = make(chan struct{})
	r.done = make(chan struct{})
	r.meterDone = make(chan struct{})

	go r.consume(audio[0])
	go r.meter()

	r.logger.Debugf("recording started: mode=%s encoding=%s", mode, mimeType)
	return nil
}

// consume accumulates track frames into 1-second chunk slices until the
// track stops. Chunk boundaries follow the wall clock so partial chunks
// on an abrupt stop are still kept.
func (r *Recorder) consume(track *Track) {
	defer close(r.done)

	lastSlice := r.clock()
	for frame := range track.Frames() {
		r.mu.Lock()
		r.current = append(r.current, frame...)
		r.lastFrame = frame
		if now := r.clock(); now.Sub(lastSlice) >= r.chunkInterval {
			r.sealLocked()
			lastSlice = now
		}
		r.mu.Unlock()
	}
}

func (r *Recorder) sealLocked() {
	if len(r.current) > 0 {
		r.chunks = append(r.chunks, r.current)
		r.current = nil
	}
}

// meter samples the energy of the most recent frame on a fixed interval
// to drive a live level display. Cosmetic only: it never blocks the
// recording path or delays finalization.
func (r *Recorder) meter() {
	defer close(r.meterDone)

	ticker := time.NewTicker(r.meterInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stopMeter:
			return
		case <-ticker.C:
			r.mu.Lock()
			frame := r.lastFrame
			r.mu.Unlock()
			level := frameLevel(frame)
			r.mu.Lock()
			r.level = level
			r.mu.Unlock()
		}
	}
}

// frameLevel converts a PCM16 frame to a normalized 0..1 energy value.
func frameLevel(frame []byte) float32 {
	if len(frame) < 2 {
		return 0
	}
	magnitudes := make([]float32, 0, len(frame)/2)
	for i := 0; i+1 < len(frame); i += 2 {
		s := int16(binary.LittleEndian.Uint16(frame[i:]))
		magnitudes = append(magnitudes, float32(math.Abs(float64(s))))
	}
	return utils.AverageFloat32(magnitudes) / 32768.0
}

// Level returns the most recent meter sample.
func (r *Recorder) Level() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.level
}

// Elapsed returns the wall-clock time since Start.
func (r *Recorder) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return 0
	}
	return r.clock().Sub(r.startTime)
}

// Recording reports whether a session is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Stop ends the session and finalizes the capture: the stream is stopped,
// remaining frames drained, chunks concatenated into one audio object and
// the elapsed wall-clock duration computed. PCM sessions are wrapped in a
// WAV container.
func (r *Recorder) Stop() (*LocalRecording, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil, fmt.Errorf("no active recording session")
	}
	stream := r.stream
	r.mu.Unlock()

	stream.Stop()
	<-r.done // consumer drained all buffered frames
	close(r.stopMeter)
	<-r.meterDone

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sealLocked()
	var audio []byte
	for _, c := range r.chunks {
		audio = append(audio, c...)
	}

	mimeType := r.mimeType
	if strings.HasPrefix(mimeType, "audio/wav") {
		audio = encodeWAV(audio)
	}

	now := r.clock()
	duration := now.Sub(r.startTime).Seconds()

	name := "Microphone " + now.Format("15:04:05")
	if r.mode == ModeFull {
		name = "Desktop+Mic " + now.Format("15:04:05")
	}

	rec := &LocalRecording{
		ID:        fmt.Sprintf("local-recording-%d", now.UnixMilli()),
		Audio:     audio,
		MimeType:  mimeType,
		Duration:  duration,
		CreatedAt: now,
		Name:      name,
		Mode:      r.mode,
	}

	r.recording = false
	r.stream = nil
	r.chunks = nil
	r.current = nil
	r.level = 0

	r.logger.Debugf("recording stopped: duration=%.1fs bytes=%d encoding=%s",
		duration, len(audio), mimeType)
	return rec, nil
}
