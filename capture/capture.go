// Package capture acquires camera and microphone streams and guarantees
// they are released when a capture ends.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// ErrDeviceUnavailable is returned when a device cannot be opened, for
// example because it is missing or access was refused.
var ErrDeviceUnavailable = errors.New("device unavailable")

// Kind identifies a capture device.
type Kind string

const (
	Camera     Kind = "camera"
	Microphone Kind = "microphone"
)

// Stream is an open device. Closing it releases the device.
type Stream io.ReadCloser

// Device opens streams of one kind.
type Device interface {
	Kind() Kind
	Open(ctx context.Context) (Stream, error)
}

type fileDevice struct {
	fs   afero.Fs
	kind Kind
	path string
}

// FileDevice returns a device whose stream is the contents of a file, such
// as a receipt photo for the camera or a recording for the microphone.
func FileDevice(fsys afero.Fs, kind Kind, path string) Device {
	return fileDevice{fs: fsys, kind: kind, path: path}
}

func (d fileDevice) Kind() Kind { return d.kind }

func (d fileDevice) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := d.fs.Open(d.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrDeviceUnavailable, d.kind, d.path, err)
	}
	return f, nil
}

type placeholder struct {
	kind Kind
}

// Placeholder returns a device that always opens an empty stream. It
// stands in when no real device is configured.
func Placeholder(kind Kind) Device {
	return placeholder{kind: kind}
}

func (p placeholder) Kind() Kind { return p.kind }

func (p placeholder) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(nil)), nil
}

// Unavailable returns a device that always fails to open.
func Unavailable(kind Kind, reason error) Device {
	return unavailable{kind: kind, reason: reason}
}

type unavailable struct {
	kind   Kind
	reason error
}

func (u unavailable) Kind() Kind { return u.kind }

func (u unavailable) Open(context.Context) (Stream, error) {
	return nil, fmt.Errorf("%w: %s: %w", ErrDeviceUnavailable, u.kind, u.reason)
}
