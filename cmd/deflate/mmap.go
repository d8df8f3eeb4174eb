package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// mappedFile is a read-only view of a file's content, backed by an
// mmap'd region on platforms that support it. data.Bytes() is safe to
// pass straight to deflate.Compress: the encoder only ever reads it.
type mappedFile struct {
	data []byte
	raw  []byte // the full mmap'd region, which may be larger than data at the end
}

func mmapFile(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &mappedFile{}, nil
	}

	raw, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		// Fall back to a plain read for filesystems that reject mmap
		// (some network mounts, procfs-like pseudo files).
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, readErr
		}
		return &mappedFile{data: data}, nil
	}

	return &mappedFile{data: raw, raw: raw}, nil
}

func (m *mappedFile) Bytes() []byte { return m.data }

func (m *mappedFile) Close() error {
	if m.raw == nil {
		return nil
	}
	raw := m.raw
	m.raw, m.data = nil, nil
	return unix.Munmap(raw)
}
