package internal_capture

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/promptdeck/pkg/commons"
)

// AcquireResult carries the stream to record plus the mode that was
// actually achieved after any degrade, and a user-facing warning when the
// session fell back from the requested mode.
type AcquireResult struct {
	Stream  *MediaStream
	Mode    RecordingMode
	Warning string

	sources []*MediaStream
}

// Close stops the recording stream and every underlying source stream.
func (ar *AcquireResult) Close() {
	for _, s := range ar.sources {
		s.Stop()
	}
	if ar.Stream != nil {
		ar.Stream.Stop()
	}
}

func micConstraints() AudioConstraints {
	return AudioConstraints{
		EchoCancellation: true,
		NoiseSuppression: true,
		AutoGainControl:  true,
		SampleRate:       44100,
	}
}

// Acquire obtains the media stream for the requested mode. In full mode
// the microphone and display streams are requested concurrently; any
// display-side failure degrades to microphone-only with a warning. Only a
// microphone failure is fatal.
func Acquire(ctx context.Context, devices MediaDevices, mode RecordingMode, logger commons.Logger) (*AcquireResult, error) {
	switch mode {
	case ModeMicOnly:
		return acquireMicOnly(ctx, devices, "")
	case ModeFull:
		return acquireFull(ctx, devices, logger)
	default:
		return nil, fmt.Errorf("%w: cannot acquire in mode %q", commons.ErrUnsupported, mode)
	}
}

func acquireMicOnly(ctx context.Context, devices MediaDevices, warning string) (*AcquireResult, error) {
	mic, err := devices.GetUserMedia(ctx, micConstraints())
	if err != nil {
		return nil, fmt.Errorf("%w: microphone acquisition failed: %v", commons.ErrPermission, err)
	}
	return &AcquireResult{
		Stream:  mic,
		Mode:    ModeMicOnly,
		Warning: warning,
		sources: []*MediaStream{mic},
	}, nil
}

func acquireFull(ctx context.Context, devices MediaDevices, logger commons.Logger) (*AcquireResult, error) {
	var (
		mic        *MediaStream
		display    *MediaStream
		displayErr error
	)

	// Fan-out: both acquisitions run concurrently to keep the permission
	// prompts close together. Display failure is captured, not returned,
	// so it cannot cancel the microphone branch.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mic, err = devices.GetUserMedia(gctx, micConstraints())
		return err
	})
	g.Go(func() error {
		display, displayErr = devices.GetDisplayMedia(gctx, DisplayConstraints{
			Video:                 true, // required for the platform to expose system audio
			SuppressLocalPlayback: false,
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		if display != nil {
			display.Stop()
		}
		return nil, fmt.Errorf("%w: microphone acquisition failed: %v", commons.ErrPermission, err)
	}

	if displayErr != nil {
		logger.Warnf("display capture failed, falling back to microphone only: %v", displayErr)
		return &AcquireResult{
			Stream:  mic,
			Mode:    ModeMicOnly,
			Warning: "Desktop recording unavailable. Using microphone only.",
			sources: []*MediaStream{mic},
		}, nil
	}

	// Video was only requested to unlock system audio; stop those tracks
	// immediately so no screen-share indicator lingers.
	for _, v := range display.VideoTracks() {
		v.Stop()
	}

	desktopAudio := display.AudioTracks()
	if len(desktopAudio) == 0 {
		logger.Warn("no desktop audio tracks available, recording microphone only")
		display.Stop()
		return &AcquireResult{
			Stream:  mic,
			Mode:    ModeMicOnly,
			Warning: "No desktop audio was shared. Using microphone only.",
			sources: []*MediaStream{mic},
		}, nil
	}

	micAudio := mic.AudioTracks()
	if len(micAudio) == 0 {
		display.Stop()
		mic.Stop()
		return nil, fmt.Errorf("%w: microphone stream has no audio track", commons.ErrPermission)
	}

	mixed := MixStreams(micAudio[0], desktopAudio[0])
	logger.Debug("recording desktop audio and microphone with mixed stream")
	return &AcquireResult{
		Stream:  mixed,
		Mode:    ModeFull,
		sources: []*MediaStream{mic, display},
	}, nil
}
