package core

import (
	"bytes"
	"io"
	"time"

	"github.com/tinkwell/twless/contracts"
)

type ArchiveFactory func(target io.Writer) contracts.ArchiveWriter

// assembleArchive writes every member into an in-memory archive so that
// nothing reaches the destination unless the whole archive was produced.
func assembleArchive(archives ArchiveFactory, modified time.Time, members ...Member) ([]byte, error) {
	buffer := new(bytes.Buffer)
	archive := archives(buffer)
	for _, member := range members {
		if err := writeMember(archive, modified, member); err != nil {
			_ = archive.Close()
			return nil, err
		}
	}
	if err := archive.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeMember(archive contracts.ArchiveWriter, modified time.Time, member Member) error {
	err := archive.WriteHeader(contracts.ArchiveHeader{
		Name:    member.Name,
		Size:    int64(len(member.Content)),
		ModTime: modified,
	})
	if err != nil {
		return err
	}
	_, err = archive.Write(member.Content)
	return err
}
