// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package openers provides custom openers for
// clams.OpenDocumentLocation, for document content the base contract
// does not decode itself.
package openers

import (
	"image"
	"io"
	"os"

	// Register decoders with the image package
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageHandle is an open image file.  Its dimensions and format are
// read eagerly; pixel data is only decoded by Decode().
type ImageHandle struct {
	file   *os.File
	config image.Config
	format string
}

// Image opens the image at path and reads its header.  Fails if the
// file cannot be opened or is not in a registered image format.
func Image(path string) (*ImageHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	config, format, err := image.DecodeConfig(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &ImageHandle{file: f, config: config, format: format}, nil
}

// Size returns the image width and height in pixels.
func (h *ImageHandle) Size() (int, int) {
	return h.config.Width, h.config.Height
}

// Format returns the registered format name, e.g. "png".
func (h *ImageHandle) Format() string {
	return h.format
}

// Decode reads the full image.
func (h *ImageHandle) Decode() (image.Image, error) {
	if _, err := h.file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(h.file)
	return img, err
}

// Close releases the underlying file.
func (h *ImageHandle) Close() error {
	return h.file.Close()
}
