// Package source opens waveform files as one contiguous byte slice.
//
// Uncompressed files are memory mapped read-only. Files compressed with one of
// the codecs in the compress package (picked by extension, then by magic bytes)
// are read and decompressed into memory.
package source

import (
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/arloliu/hspice/compress"
	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/format"
)

const sniffSize = 16

// Source is the content of an opened waveform file.
//
// The slice returned by Bytes is valid until Close is called.
type Source struct {
	name        string
	data        []byte
	mapped      mmap.MMap
	compression format.CompressionType
}

// Open opens the file at path.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO("open", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errs.IO("stat", err)
	}

	src := &Source{name: path, compression: format.CompressionNone}
	if info.Size() == 0 {
		return src, nil
	}

	head := make([]byte, sniffSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, errs.IO("read", err)
	}

	ct := compress.ForFile(path, head[:n])
	if ct == format.CompressionNone {
		mapped, err := mmap.Map(f, mmap.RDONLY, 0)
		if err != nil {
			return nil, errs.IO("mmap", err)
		}
		src.mapped = mapped
		src.data = mapped

		return src, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, errs.IO("seek", err)
	}

	raw := make([]byte, info.Size())
	if _, err := io.ReadFull(f, raw); err != nil {
		return nil, errs.IO("read", err)
	}

	data, err := decompress(ct, raw)
	if err != nil {
		return nil, err
	}
	src.data = data
	src.compression = ct

	return src, nil
}

// FromBytes wraps an in-memory file, decompressing it when its leading bytes
// match a supported container format.
func FromBytes(name string, data []byte) (*Source, error) {
	src := &Source{name: name, data: data, compression: format.CompressionNone}

	ct := compress.ForFile(name, data)
	if ct == format.CompressionNone {
		return src, nil
	}

	out, err := decompress(ct, data)
	if err != nil {
		return nil, err
	}
	src.data = out
	src.compression = ct

	return src, nil
}

func decompress(ct format.CompressionType, data []byte) ([]byte, error) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, errs.IO("decompress "+ct.String(), err)
	}

	return out, nil
}

// Name returns the path the source was opened from.
func (s *Source) Name() string { return s.name }

// Bytes returns the decompressed file content.
func (s *Source) Bytes() []byte { return s.data }

// Compression returns the container format the file was stored in.
func (s *Source) Compression() format.CompressionType { return s.compression }

// Mapped reports whether the content is backed by a memory mapping.
func (s *Source) Mapped() bool { return s.mapped != nil }

// Close releases the mapping. It is safe to call more than once.
func (s *Source) Close() error {
	s.data = nil
	if s.mapped == nil {
		return nil
	}

	m := s.mapped
	s.mapped = nil
	if err := m.Unmap(); err != nil {
		return errs.IO("munmap", err)
	}

	return nil
}
