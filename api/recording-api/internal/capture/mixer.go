package internal_capture

import "encoding/binary"

// Mixing gains. The desktop source is intentionally attenuated so the
// speaker's voice stays dominant over system audio.
const (
	MicGain     = 1.0
	DesktopGain = 0.8
)

// gainNode scales PCM16 amplitude by a fixed factor.
type gainNode struct {
	gain float64
}

func (g gainNode) apply(frame []byte) []byte {
	out := make([]byte, len(frame))
	for i := 0; i+1 < len(frame); i += 2 {
		s := int16(binary.LittleEndian.Uint16(frame[i:]))
		binary.LittleEndian.PutUint16(out[i:], uint16(clampPCM16(int32(float64(s)*g.gain))))
	}
	return out
}

func clampPCM16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// MixStreams builds the audio graph for full-mode recording: two source
// tracks, each through its own gain node, summed into one destination
// track. Frames pair by arrival index while both sources are live; the
// merge keeps draining a producing source even when the other is silent,
// so neither track's buffer overflows waiting on its counterpart. A
// drained source can never pair again and the other side passes through.
// The destination stops once both sources have stopped.
func MixStreams(mic, desktop *Track) *MediaStream {
	out := NewTrack(TrackAudio, "mixed")
	micGain := gainNode{gain: MicGain}
	desktopGain := gainNode{gain: DesktopGain}

	go func() {
		defer out.Stop()
		micCh := mic.Frames()
		desktopCh := desktop.Frames()
		var micQ, desktopQ [][]byte
		for micCh != nil || desktopCh != nil {
			select {
			case frame, ok := <-micCh:
				if !ok {
					micCh = nil
					break
				}
				micQ = append(micQ, micGain.apply(frame))
			case frame, ok := <-desktopCh:
				if !ok {
					desktopCh = nil
					break
				}
				desktopQ = append(desktopQ, desktopGain.apply(frame))
			}
			for len(micQ) > 0 && len(desktopQ) > 0 {
				out.Push(sumFrames(micQ[0], desktopQ[0]))
				micQ, desktopQ = micQ[1:], desktopQ[1:]
			}
			if micCh == nil && len(micQ) == 0 {
				desktopQ = flushFrames(out, desktopQ)
			}
			if desktopCh == nil && len(desktopQ) == 0 {
				micQ = flushFrames(out, micQ)
			}
		}
	}()

	return NewMediaStream(out)
}

func flushFrames(out *Track, frames [][]byte) [][]byte {
	for _, f := range frames {
		out.Push(f)
	}
	return nil
}

// sumFrames adds two scaled PCM16 frames sample-wise with clamping. Either
// frame may be nil; the other passes through.
func sumFrames(a, b []byte) []byte {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	long, short := a, b
	if len(b) > len(a) {
		long, short = b, a
	}
	out := make([]byte, len(long))
	copy(out, long)
	for i := 0; i+1 < len(short); i += 2 {
		sa := int16(binary.LittleEndian.Uint16(long[i:]))
		sb := int16(binary.LittleEndian.Uint16(short[i:]))
		binary.LittleEndian.PutUint16(out[i:], uint16(clampPCM16(int32(sa)+int32(sb))))
	}
	return out
}
