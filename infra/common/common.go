package common

import (
	"crypto/md5"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// GenerateHash folds the md5 of every regular file under path into a
// single digest, used to tag container images by source content.
func GenerateHash(path string) (string, error) {
	var hash string

	err := filepath.WalkDir(path,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.Type().IsRegular() {
				fh, err := fileMd5(path)
				if err != nil {
					return err
				}
				hash = foldHash(hash, fh)
			}

			return nil
		})

	return hash, err
}

func fileMd5(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func foldHash(hash1, hash2 string) string {
	h := md5.New()
	io.WriteString(h, hash1+hash2)

	return fmt.Sprintf("%x", h.Sum(nil))
}
