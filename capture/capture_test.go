package capture

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/carlmjohnson/be"
	"github.com/spf13/afero"
)

type countingStream struct {
	closes *int
}

func (countingStream) Read([]byte) (int, error) { return 0, io.EOF }

func (c countingStream) Close() error {
	*c.closes++
	return nil
}

type countingDevice struct {
	opens  int
	closes int
}

func (d *countingDevice) Kind() Kind { return Microphone }

func (d *countingDevice) Open(context.Context) (Stream, error) {
	d.opens++
	return countingStream{closes: &d.closes}, nil
}

func TestSessionStartStopsPreviousStream(t *testing.T) {
	d := &countingDevice{}
	s := NewSession(d)

	_, err := s.Start(context.Background())
	be.NilErr(t, err)
	_, err = s.Start(context.Background())
	be.NilErr(t, err)

	be.Equal(t, 2, d.opens)
	be.Equal(t, 1, d.closes)
	be.True(t, s.Active())

	s.Stop()
	s.Stop()
	be.Equal(t, 2, d.closes)
	be.False(t, s.Active())
}

func TestCaptureReleasesOnEveryPath(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(Stream) error
		panic bool
	}{
		{"success", func(Stream) error { return nil }, false},
		{"error", func(Stream) error { return errors.New("boom") }, false},
		{"panic", func(Stream) error { panic("boom") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &countingDevice{}
			s := NewSession(d)

			func() {
				defer func() {
					r := recover()
					be.Equal(t, tt.panic, r != nil)
				}()
				_ = s.Capture(context.Background(), tt.fn)
			}()

			be.Equal(t, 1, d.opens)
			be.Equal(t, 1, d.closes)
			be.False(t, s.Active())
		})
	}
}

func TestFileDevice(t *testing.T) {
	fs := afero.NewMemMapFs()
	be.NilErr(t, afero.WriteFile(fs, "/receipt.jpg", []byte("jpeg"), 0o644))

	s := NewSession(FileDevice(fs, Camera, "/receipt.jpg"))
	var got []byte
	err := s.Capture(context.Background(), func(st Stream) error {
		var err error
		got, err = io.ReadAll(st)
		return err
	})
	be.NilErr(t, err)
	be.Equal(t, "jpeg", string(got))

	missing := NewSession(FileDevice(fs, Camera, "/nope.jpg"))
	_, err = missing.Start(context.Background())
	be.True(t, errors.Is(err, ErrDeviceUnavailable))
	be.False(t, missing.Active())
}

func TestPlaceholderAndUnavailable(t *testing.T) {
	st, err := Placeholder(Microphone).Open(context.Background())
	be.NilErr(t, err)
	data, err := io.ReadAll(st)
	be.NilErr(t, err)
	be.Equal(t, 0, len(data))

	_, err = Unavailable(Camera, errors.New("permission denied")).Open(context.Background())
	be.True(t, errors.Is(err, ErrDeviceUnavailable))
}
