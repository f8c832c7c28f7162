// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package clams

import (
	"context"
	"io"
	"os"

	"github.com/diffeo/go-clams/mmif"
)

// Opener opens the resource at a local path.  The handle it returns is
// closed by OpenDocumentLocation.
type Opener[H io.Closer] func(path string) (H, error)

// OpenFile is the default opener, returning the raw file.
func OpenFile(path string) (*os.File, error) {
	return os.Open(path)
}

// OpenDocumentLocation opens the resource doc points at with open, and
// passes the handle to fn.  The handle is closed when fn returns,
// fails, or panics.  If ctx is already done nothing is opened.  Errors
// resolving or opening the location are returned as they are.
//
// Custom openers decode content this package does not know about; see
// the openers package for images.
func OpenDocumentLocation[H io.Closer](ctx context.Context, doc *mmif.Document, open Opener[H], fn func(H) error) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}
	path, err := doc.LocationPath()
	if err != nil {
		return err
	}
	handle, err := open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := handle.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(handle)
}

// OpenDocumentFile opens doc's location as a plain file.
func OpenDocumentFile(ctx context.Context, doc *mmif.Document, fn func(*os.File) error) error {
	return OpenDocumentLocation[*os.File](ctx, doc, OpenFile, fn)
}
