package io2

import (
	"io"
	"os"
	"path/filepath"
)

func pathExistsCore(path string) (os.FileInfo, error) {
	if fileInfo, err := os.Stat(path); err == nil {
		return fileInfo, nil
	} else if os.IsNotExist(err) {
		return nil, nil
	} else {
		return nil, err
	}
}

func FileExists(file string) bool {
	info, err := pathExistsCore(file)
	if err != nil {
		return false
	}
	return info != nil && !info.IsDir()
}

func DirectoryExists(dir string) bool {
	info, err := pathExistsCore(dir)
	if err != nil {
		return false
	}
	return info != nil && info.IsDir()
}

func ResolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		panic(err)
	}
	return abs
}

func IsDirectoryEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	return false, err // Either not empty or error, suits both cases
}

func Mkdirp(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func CleanDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return Mkdirp(dir)
}

// CopyFile copies src to dst, creating parent directories as needed.
func CopyFile(src, dst string) error {
	if err := Mkdirp(filepath.Dir(dst)); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
