package vfs

import (
	"io"
	"io/fs"
	"os"
)

type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

type LocalOSOpener struct {
}

func (o LocalOSOpener) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

var LocalOS = LocalOSOpener{}

// FSOpener opens files from an fs.FS, e.g. assets embedded into the binary.
type FSOpener struct {
	FS fs.FS
}

func (o FSOpener) Open(name string) (io.ReadCloser, error) {
	return o.FS.Open(name)
}

// ReadFile reads the whole file through the opener.
func ReadFile(opener Opener, name string) ([]byte, error) {
	file, err := opener.Open(name)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	return io.ReadAll(file)
}
