package notify

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Player воспроизводит аудио потоком в зависимости от формата.
type Player interface {
	Play(ctx context.Context, format string, r io.ReadCloser) error
}

// beepPlayer поддерживает mp3 и wav.
type beepPlayer struct{}

func (beepPlayer) Play(ctx context.Context, format string, r io.ReadCloser) error {
	var (
		streamer beep.StreamSeekCloser
		f        beep.Format
		err      error
	)
	switch format {
	case "wav", "WAV":
		streamer, f, err = wav.Decode(r)
	case "mp3", "MP3":
		streamer, f, err = mp3.Decode(r)
	default:
		return errors.New("unsupported format for direct playback; use mp3 or wav")
	}
	if err != nil {
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(f.SampleRate, f.SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() { close(done) })))
	return waitPlayback(ctx, done, speaker.Clear)
}

// waitPlayback ждёт конца звука; при отмене ctx обрывает его через stop.
func waitPlayback(ctx context.Context, done <-chan struct{}, stop func()) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		stop()
		return context.Cause(ctx)
	}
}
