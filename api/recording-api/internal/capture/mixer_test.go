package internal_capture

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcmFrame(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func pcmSamples(frame []byte) []int16 {
	out := make([]int16, 0, len(frame)/2)
	for i := 0; i+1 < len(frame); i += 2 {
		out = append(out, int16(binary.LittleEndian.Uint16(frame[i:])))
	}
	return out
}

func collectFrames(t *testing.T, track *Track) [][]byte {
	t.Helper()
	var frames [][]byte
	timeout := time.After(2 * time.Second)
	for {
		select {
		case frame, ok := <-track.Frames():
			if !ok {
				return frames
			}
			frames = append(frames, frame)
		case <-timeout:
			t.Fatal("timed out waiting for mixed frames")
		}
	}
}

func TestMixStreamsAppliesGains(t *testing.T) {
	mic := NewTrack(TrackAudio, "microphone")
	desktop := NewTrack(TrackAudio, "system audio")

	mixed := MixStreams(mic, desktop)
	out := mixed.AudioTracks()
	require.Len(t, out, 1)

	require.True(t, mic.Push(pcmFrame(1000, -500)))
	require.True(t, desktop.Push(pcmFrame(1000, -500)))
	mic.Stop()
	desktop.Stop()

	frames := collectFrames(t, out[0])
	require.Len(t, frames, 1)
	// mic at unity gain plus desktop at 0.8
	assert.Equal(t, []int16{1800, -900}, pcmSamples(frames[0]))
}

func TestMixStreamsClampsOverflow(t *testing.T) {
	mic := NewTrack(TrackAudio, "microphone")
	desktop := NewTrack(TrackAudio, "system audio")

	mixed := MixStreams(mic, desktop)
	out := mixed.AudioTracks()[0]

	require.True(t, mic.Push(pcmFrame(30000, -30000)))
	require.True(t, desktop.Push(pcmFrame(30000, -30000)))
	mic.Stop()
	desktop.Stop()

	frames := collectFrames(t, out)
	require.Len(t, frames, 1)
	assert.Equal(t, []int16{32767, -32768}, pcmSamples(frames[0]))
}

func TestMixStreamsPassThroughAfterSourceStops(t *testing.T) {
	mic := NewTrack(TrackAudio, "microphone")
	desktop := NewTrack(TrackAudio, "system audio")
	desktop.Stop()

	mixed := MixStreams(mic, desktop)
	out := mixed.AudioTracks()[0]

	require.True(t, mic.Push(pcmFrame(1000)))
	require.True(t, mic.Push(pcmFrame(2000)))
	mic.Stop()

	frames := collectFrames(t, out)
	require.Len(t, frames, 2)
	assert.Equal(t, []int16{1000}, pcmSamples(frames[0]))
	assert.Equal(t, []int16{2000}, pcmSamples(frames[1]))
}

func TestMixStreamsUnevenFrameLengths(t *testing.T) {
	mic := NewTrack(TrackAudio, "microphone")
	desktop := NewTrack(TrackAudio, "system audio")

	mixed := MixStreams(mic, desktop)
	out := mixed.AudioTracks()[0]

	require.True(t, mic.Push(pcmFrame(1000, 1000, 1000)))
	require.True(t, desktop.Push(pcmFrame(1000)))
	mic.Stop()
	desktop.Stop()

	frames := collectFrames(t, out)
	require.Len(t, frames, 1)
	// the shorter frame only contributes to the overlapping samples
	assert.Equal(t, []int16{1800, 1000, 1000}, pcmSamples(frames[0]))
}

func TestMixStreamsDrainsWhileOtherSourceSilent(t *testing.T) {
	mic := NewTrack(TrackAudio, "microphone")
	desktop := NewTrack(TrackAudio, "system audio")

	mixed := MixStreams(mic, desktop)
	out := mixed.AudioTracks()[0]

	// push far past the track buffer while the microphone stays silent;
	// the merge must keep consuming the producing side
	for i := 0; i < 200; i++ {
		require.Eventually(t, func() bool {
			return desktop.Push(pcmFrame(100))
		}, 2*time.Second, time.Millisecond)
	}

	require.True(t, mic.Push(pcmFrame(100)))
	mic.Stop()
	desktop.Stop()

	// the lone microphone frame pairs with the oldest desktop frame, the
	// rest pass through until the destination buffer is full
	frames := collectFrames(t, out)
	require.Len(t, frames, defaultTrackBuffer)
	assert.Equal(t, []int16{180}, pcmSamples(frames[0]))
	assert.Equal(t, []int16{80}, pcmSamples(frames[1]))
}

func TestMixStreamsStopsOutputWhenSourcesEnd(t *testing.T) {
	mic := NewTrack(TrackAudio, "microphone")
	desktop := NewTrack(TrackAudio, "system audio")

	mixed := MixStreams(mic, desktop)
	out := mixed.AudioTracks()[0]

	mic.Stop()
	desktop.Stop()

	frames := collectFrames(t, out)
	assert.Empty(t, frames)
	assert.True(t, out.Stopped())
}
