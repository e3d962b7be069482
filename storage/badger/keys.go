package badger

import (
	"encoding/binary"

	"github.com/Nikkoola22/ATLAS/core"
)

const (
	documentPrefix = "docrec"
)

// makeDocumentKey addresses a body by the content ID of its (source, chapter) tuple.
func makeDocumentKey(source core.Source, chapter int) []byte {
	prefix := documentPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(core.DocumentTuple(source, chapter))))
	return buf
}

func makeDocumentScanPrefix() []byte {
	return []byte(documentPrefix + ":")
}
