package alert

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBell_Buffer(t *testing.T) {
	buffer, err := Bell{}.Buffer()
	require.NoError(t, err)

	assert.Equal(t, DefaultSampleRate, buffer.Format().SampleRate)
	assert.Equal(t, 2, buffer.Format().NumChannels)
	assert.Equal(t, DefaultSampleRate.N(BellDuration), buffer.Len())

	samples := make([][2]float64, buffer.Len())
	s := buffer.Streamer(0, buffer.Len())
	n, ok := s.Stream(samples)
	require.True(t, ok)
	require.Equal(t, buffer.Len(), n)

	// Starts silent, stays in range, ends quieter than it peaks.
	assert.InDelta(t, 0, samples[0][0], 1e-3)
	peak := 0.0
	for _, smp := range samples {
		assert.Equal(t, smp[0], smp[1])
		assert.LessOrEqual(t, math.Abs(smp[0]), 1.0)
		peak = math.Max(peak, math.Abs(smp[0]))
	}
	assert.Greater(t, peak, 0.3)

	tailPeak := 0.0
	for _, smp := range samples[len(samples)-1000:] {
		tailPeak = math.Max(tailPeak, math.Abs(smp[0]))
	}
	assert.Less(t, tailPeak, peak/2)
}

func TestBell_Name(t *testing.T) {
	assert.Equal(t, "bell", Bell{}.Name())
}

func TestAssetFromPath(t *testing.T) {
	assert.Equal(t, Bell{}, AssetFromPath(""))
	assert.Equal(t, FileAsset{Path: "/tmp/ding.wav"}, AssetFromPath("/tmp/ding.wav"))
}

func writeBellWAV(t *testing.T, path string) {
	t.Helper()

	bell, err := Bell{SampleRate: 22050}.Buffer()
	require.NoError(t, err)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	err = wav.Encode(f, bell.Streamer(0, bell.Len()), bell.Format())
	require.NoError(t, err)
}

func TestFileAsset_DecodesWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bell.wav")
	writeBellWAV(t, path)

	asset := FileAsset{Path: path}
	buffer, err := asset.Buffer()
	require.NoError(t, err)

	assert.Equal(t, beep.SampleRate(22050), buffer.Format().SampleRate)
	assert.Equal(t, beep.SampleRate(22050).N(BellDuration), buffer.Len())
	assert.Equal(t, path, asset.Name())

	size, err := asset.Size()
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))
}

func TestFileAsset_ExtensionIsCaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "BELL.WAV")
	writeBellWAV(t, path)

	_, err := FileAsset{Path: path}.Buffer()
	assert.NoError(t, err)
}

func TestFileAsset_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bell.flac")
	require.NoError(t, os.WriteFile(path, []byte("fLaC"), 0644))

	_, err := FileAsset{Path: path}.Buffer()
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFileAsset_Missing(t *testing.T) {
	_, err := FileAsset{Path: "/nonexistent/bell.wav"}.Buffer()
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = FileAsset{Path: "/nonexistent/bell.wav"}.Size()
	assert.Error(t, err)
}

func TestFileAsset_CorruptWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0644))

	_, err := FileAsset{Path: path}.Buffer()
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, "/home/tester/sounds/bell.wav", expandPath("~/sounds/bell.wav"))
	assert.Equal(t, "/abs/bell.wav", expandPath("/abs/bell.wav"))
	assert.Equal(t, "rel/bell.wav", expandPath("rel/bell.wav"))
}
