package alert

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupportedFormat is returned for sound files that are not WAV, OGG or MP3.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Asset is a sound that can be decoded into memory.
type Asset interface {
	// Name identifies the asset in logs.
	Name() string
	// Buffer decodes the whole asset.
	Buffer() (*beep.Buffer, error)
}

// AssetFromPath returns the file at path, or the built-in bell when path is
// empty.
func AssetFromPath(path string) Asset {
	if path == "" {
		return Bell{}
	}
	return FileAsset{Path: path}
}

// FileAsset is a WAV, OGG or MP3 file on disk.
type FileAsset struct {
	Path string
}

// Name returns the file path.
func (a FileAsset) Name() string {
	return a.Path
}

// Size returns the size of the file in bytes.
func (a FileAsset) Size() (int64, error) {
	info, err := os.Stat(expandPath(a.Path))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Buffer decodes the file, choosing the decoder by extension.
func (a FileAsset) Buffer() (*beep.Buffer, error) {
	path := expandPath(a.Path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ext := strings.ToLower(filepath.Ext(path))

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	return buffer, nil
}

// Bell shape.
const (
	BellFrequency        = 880.0
	BellOvertoneRatio    = 2.76
	BellDuration         = 1200 * time.Millisecond
	BellAttack           = 5 * time.Millisecond
	BellFundamentalDecay = 1100 * time.Millisecond
	BellOvertoneDecay    = 300 * time.Millisecond
)

// Bell is the built-in alarm clip: a struck bell made of a fundamental and
// an inharmonic overtone, each with its own exponential decay.
type Bell struct {
	SampleRate beep.SampleRate
}

// Name returns "bell".
func (Bell) Name() string {
	return "bell"
}

// Buffer renders the bell into a stereo buffer.
func (b Bell) Buffer() (*beep.Buffer, error) {
	sr := b.SampleRate
	if sr == 0 {
		sr = DefaultSampleRate
	}

	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	total := sr.N(BellDuration)
	attack := float64(sr.N(BellAttack))
	rate := float64(sr)

	pos := 0
	streamer := beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			t := float64(pos) / rate

			env := 1.0
			if float64(pos) < attack {
				env = float64(pos) / attack
			}
			fundamental := math.Sin(2*math.Pi*BellFrequency*t) *
				math.Exp(-t/BellFundamentalDecay.Seconds())
			overtone := 0.4 * math.Sin(2*math.Pi*BellFrequency*BellOvertoneRatio*t) *
				math.Exp(-t/BellOvertoneDecay.Seconds())

			v := 0.6 * env * (fundamental + overtone)
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
