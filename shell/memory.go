package shell

import (
	"os"
	"sort"
)

type InMemoryFileSystem struct {
	files     map[string][]byte
	readErrs  map[string]error
	writeErrs map[string]error
}

func NewInMemoryFileSystem() *InMemoryFileSystem {
	return &InMemoryFileSystem{
		files:     make(map[string][]byte),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

func (this *InMemoryFileSystem) ReadFile(path string) ([]byte, error) {
	if err := this.readErrs[path]; err != nil {
		return nil, err
	}
	content, found := this.files[path]
	if !found {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return append([]byte(nil), content...), nil
}

func (this *InMemoryFileSystem) WriteFile(path string, content []byte) error {
	if err := this.writeErrs[path]; err != nil {
		return err
	}
	this.files[path] = append([]byte(nil), content...)
	return nil
}

func (this *InMemoryFileSystem) FailRead(path string, err error)  { this.readErrs[path] = err }
func (this *InMemoryFileSystem) FailWrite(path string, err error) { this.writeErrs[path] = err }

func (this *InMemoryFileSystem) Exists(path string) bool {
	_, found := this.files[path]
	return found
}

func (this *InMemoryFileSystem) Paths() (paths []string) {
	for path := range this.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
