package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("archive is empty")

// LoadError describes a file that could not be loaded or decompressed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadFile loads the given file and performs decompression if necessary.
// The compression type is inferred from the file extension, and
// archives (.zip, .7z) yield their first file.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &LoadError{Path: filename, Err: err}
	}

	data, err = Decompress(filepath.Ext(filename), data)
	if err != nil {
		return nil, &LoadError{Path: filename, Err: err}
	}
	return data, nil
}

// Decompress decodes data according to ext. Unknown extensions
// return data as is.
func Decompress(ext string, data []byte) ([]byte, error) {
	var (
		decoder io.Reader
		err     error
		r       = bytes.NewReader(data)
	)

	switch strings.ToLower(ext) {
	case ".gz":
		decoder, err = gzip.NewReader(r)
	case ".xz":
		decoder, err = xz.NewReader(r)
	case ".br":
		decoder = brotli.NewReader(r)
	case ".lz4":
		decoder = lz4.NewReader(r)
	case ".zst":
		var d *zstd.Decoder
		if d, err = zstd.NewReader(r); err == nil {
			defer d.Close()
			decoder = d
		}
	case ".zip":
		var z *zip.Reader
		if z, err = zip.NewReader(r, int64(len(data))); err != nil {
			return nil, err
		}
		if len(z.File) == 0 {
			return nil, ErrEmptyArchive
		}
		var rc io.ReadCloser
		if rc, err = z.File[0].Open(); err != nil {
			return nil, err
		}
		defer rc.Close()
		decoder = rc
	case ".7z":
		var s *sevenzip.Reader
		if s, err = sevenzip.NewReader(r, int64(len(data))); err != nil {
			return nil, err
		}
		if len(s.File) == 0 {
			return nil, ErrEmptyArchive
		}
		var rc io.ReadCloser
		if rc, err = s.File[0].Open(); err != nil {
			return nil, err
		}
		defer rc.Close()
		decoder = rc
	default:
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	return io.ReadAll(decoder)
}
