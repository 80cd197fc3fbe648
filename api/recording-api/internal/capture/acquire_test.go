package internal_capture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/pkg/commons"
)

func TestAcquireMicOnly(t *testing.T) {
	micTrack := NewTrack(TrackAudio, "microphone")
	devices := &fakeDevices{micTracks: []*Track{micTrack}}

	result, err := Acquire(context.Background(), devices, ModeMicOnly, captureLogger(t))
	require.NoError(t, err)
	defer result.Close()

	assert.Equal(t, ModeMicOnly, result.Mode)
	assert.Empty(t, result.Warning)
	assert.Len(t, result.Stream.AudioTracks(), 1)
	assert.Zero(t, devices.displayCalls)
}

func TestAcquireMicrophoneFailureIsFatal(t *testing.T) {
	devices := &fakeDevices{micErr: errors.New("permission denied")}

	result, err := Acquire(context.Background(), devices, ModeMicOnly, captureLogger(t))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, commons.IsPermission(err))
}

func TestAcquireFullMixesBothSources(t *testing.T) {
	micTrack := NewTrack(TrackAudio, "microphone")
	screenTrack := NewTrack(TrackVideo, "screen")
	desktopTrack := NewTrack(TrackAudio, "system audio")
	devices := &fakeDevices{
		micTracks:     []*Track{micTrack},
		displayTracks: []*Track{screenTrack, desktopTrack},
	}

	result, err := Acquire(context.Background(), devices, ModeFull, captureLogger(t))
	require.NoError(t, err)
	defer result.Close()

	assert.Equal(t, ModeFull, result.Mode)
	assert.Empty(t, result.Warning)
	assert.Equal(t, 1, devices.micCalls)
	assert.Equal(t, 1, devices.displayCalls)

	// video was only requested to unlock system audio
	assert.True(t, screenTrack.Stopped())
	assert.False(t, desktopTrack.Stopped())

	mixedTracks := result.Stream.AudioTracks()
	require.Len(t, mixedTracks, 1)
	assert.Equal(t, "mixed", mixedTracks[0].Label())

	require.True(t, micTrack.Push(pcmFrame(1000)))
	require.True(t, desktopTrack.Push(pcmFrame(1000)))
	micTrack.Stop()
	desktopTrack.Stop()

	frames := collectFrames(t, mixedTracks[0])
	require.Len(t, frames, 1)
	assert.Equal(t, []int16{1800}, pcmSamples(frames[0]))
}

func TestAcquireFullDegradesWhenDisplayDenied(t *testing.T) {
	micTrack := NewTrack(TrackAudio, "microphone")
	devices := &fakeDevices{
		micTracks:  []*Track{micTrack},
		displayErr: errors.New("user cancelled the share dialog"),
	}

	result, err := Acquire(context.Background(), devices, ModeFull, captureLogger(t))
	require.NoError(t, err)
	defer result.Close()

	assert.Equal(t, ModeMicOnly, result.Mode)
	assert.Equal(t, "Desktop recording unavailable. Using microphone only.", result.Warning)
	require.Len(t, result.Stream.AudioTracks(), 1)
	assert.False(t, micTrack.Stopped())
}

func TestAcquireFullDegradesWithoutDesktopAudio(t *testing.T) {
	micTrack := NewTrack(TrackAudio, "microphone")
	screenTrack := NewTrack(TrackVideo, "screen")
	devices := &fakeDevices{
		micTracks:     []*Track{micTrack},
		displayTracks: []*Track{screenTrack},
	}

	result, err := Acquire(context.Background(), devices, ModeFull, captureLogger(t))
	require.NoError(t, err)
	defer result.Close()

	assert.Equal(t, ModeMicOnly, result.Mode)
	assert.Equal(t, "No desktop audio was shared. Using microphone only.", result.Warning)
	assert.True(t, screenTrack.Stopped())
	assert.False(t, micTrack.Stopped())
}

func TestAcquireFullMicrophoneFailureStopsDisplay(t *testing.T) {
	screenTrack := NewTrack(TrackVideo, "screen")
	desktopTrack := NewTrack(TrackAudio, "system audio")
	devices := &fakeDevices{
		micErr:        errors.New("permission denied"),
		displayTracks: []*Track{screenTrack, desktopTrack},
	}

	result, err := Acquire(context.Background(), devices, ModeFull, captureLogger(t))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, commons.IsPermission(err))
	assert.True(t, screenTrack.Stopped())
	assert.True(t, desktopTrack.Stopped())
}

func TestAcquireUnsupportedMode(t *testing.T) {
	result, err := Acquire(context.Background(), &fakeDevices{}, ModeUnsupported, captureLogger(t))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, commons.IsUnsupported(err))
}

func TestAcquireResultCloseStopsEverything(t *testing.T) {
	micTrack := NewTrack(TrackAudio, "microphone")
	devices := &fakeDevices{micTracks: []*Track{micTrack}}

	result, err := Acquire(context.Background(), devices, ModeMicOnly, captureLogger(t))
	require.NoError(t, err)

	result.Close()
	assert.True(t, micTrack.Stopped())
}
