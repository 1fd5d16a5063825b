package timer

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const speakerBufferDivisor = 10

// prepSoundStream returns an audio stream for the specified sound
// file.
func prepSoundStream(
	sound string,
) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(sound)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch filepath.Ext(sound) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, errInvalidSoundFormat
	}

	if err != nil {
		return nil, beep.Format{}, err
	}

	return stream, format, nil
}

// playTone plays the specified sound file and blocks until playback
// finishes.
func playTone(sound string) error {
	stream, format, err := prepSoundStream(sound)
	if err != nil {
		return err
	}

	defer stream.Close()

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Second/speakerBufferDivisor),
	)
	if err != nil {
		return err
	}

	done := make(chan bool)

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		done <- true
	})))

	<-done

	speaker.Clear()
	speaker.Close()

	return nil
}
