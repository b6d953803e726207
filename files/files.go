// files is a package with utility-like file functions used in redditposts
package files

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/flytam/filenamify"
)

var ErrEmpty = errors.New("empty parameter provided")

// chunkSize is the size of the write buffer, the whole body is never held in memory.
const chunkSize = 32 * 1024

const MaxFilenameLength = 200

// Filename returns "name.extension" with every character that isn't valid in a filename replaced.
// Names that don't produce a usable filename are rejected.
func Filename(name, extension string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: filename can not be empty", ErrEmpty)
	}
	if extension == "" {
		return "", fmt.Errorf("%w: extension can not be empty", ErrEmpty)
	}

	formatted, err := filenamify.Filenamify(name+"."+extension, filenamify.Options{
		Replacement: "_",
		MaxLength:   MaxFilenameLength,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to create filename (name=%s,ext=%s)", err, name, extension)
	}

	return formatted, nil
}

// Exists returns whether the file exists.
func Exists(filename string) bool {
	f, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !f.IsDir()
}

// MkdirIfMissing creates the directory (and parents) if it doesn't exist yet.
func MkdirIfMissing(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("%w: couldn't create directory(name=%s)", err, dir)
	}
	return nil
}

// Save streams r into path, replacing the file if it exists.
//
// The data is written to a temporary file next to path first,
// so if reading or writing fails there is never a partial file at path.
func Save(path string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("%w: couldn't create file(name=%s)", err, path)
	}

	n, err := write(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return n, fmt.Errorf("%w: couldn't write file(name=%s)", err, path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return n, fmt.Errorf("%w: couldn't write file(name=%s)", err, path)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return n, fmt.Errorf("%w: couldn't save file(name=%s)", err, path)
	}

	return n, nil
}

func write(f *os.File, r io.Reader) (int64, error) {
	fw := bufio.NewWriterSize(f, chunkSize)

	n, err := io.Copy(fw, r)
	if err != nil {
		return n, err
	}

	return n, fw.Flush()
}
