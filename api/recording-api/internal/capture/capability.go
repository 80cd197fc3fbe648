package internal_capture

import (
	"context"
	"strings"

	"github.com/promptdeck/pkg/commons"
)

// RecordingMode is the capture strategy recommended for (or requested on)
// a session.
type RecordingMode string

const (
	ModeFull        RecordingMode = "full"
	ModeMicOnly     RecordingMode = "mic-only"
	ModeUnsupported RecordingMode = "unsupported"
)

// RecordingCapabilities is the once-per-session snapshot of what the
// platform can capture. All later branching keys off this value.
type RecordingCapabilities struct {
	Basic            bool          `json:"basic"`
	DesktopAudio     bool          `json:"desktopAudio"`
	WebAudio         bool          `json:"webAudio"`
	MicrophoneAccess bool          `json:"microphoneAccess"`
	BrowserName      BrowserFamily `json:"browserName"`
	RecommendedMode  RecordingMode `json:"recommendedMode"`
}

// DetectCapabilities inspects the platform and probes microphone access.
// It never fails: permission denial and missing APIs only degrade the
// returned flags. The probe stream is released immediately.
func DetectCapabilities(ctx context.Context, devices MediaDevices, logger commons.Logger) RecordingCapabilities {
	platform := devices.Platform()
	features := devices.Features()

	caps := RecordingCapabilities{
		Basic:           features.MediaRecorder,
		WebAudio:        features.AudioGraph,
		BrowserName:     browserFamily(platform.UserAgent),
		RecommendedMode: ModeUnsupported,
	}

	if !platform.SecureContext {
		logger.Warn("audio recording requires a secure context")
		return caps
	}

	// Microphone permission probe: acquire, then release every track.
	if probe, err := devices.GetUserMedia(ctx, AudioConstraints{}); err == nil {
		caps.MicrophoneAccess = true
		probe.Stop()
	} else {
		logger.Warnf("microphone access denied or unavailable: %v", err)
	}

	// Desktop audio is a heuristic, not a verified feature check: only the
	// Chromium family on Windows/Linux reliably exposes system audio via
	// display capture. Unlisted platforms stay false.
	if caps.Basic && features.DisplayCapture {
		os := strings.ToLower(platform.OS)
		chromium := caps.BrowserName == BrowserChrome || caps.BrowserName == BrowserEdge
		caps.DesktopAudio = chromium && (strings.Contains(os, "win") || strings.Contains(os, "linux"))
		logger.Debugf("desktop audio support: browser=%s os=%s supported=%t",
			caps.BrowserName, platform.OS, caps.DesktopAudio)
	}

	switch {
	case caps.DesktopAudio && caps.MicrophoneAccess && caps.WebAudio:
		caps.RecommendedMode = ModeFull
	case caps.MicrophoneAccess && caps.Basic:
		caps.RecommendedMode = ModeMicOnly
	default:
		caps.RecommendedMode = ModeUnsupported
	}

	return caps
}

func browserFamily(userAgent string) BrowserFamily {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "edg"):
		return BrowserEdge
	case strings.Contains(ua, "chrome"):
		return BrowserChrome
	case strings.Contains(ua, "firefox"):
		return BrowserFirefox
	case strings.Contains(ua, "safari"):
		return BrowserSafari
	default:
		return BrowserUnknown
	}
}
