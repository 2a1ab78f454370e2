package badger

import "fmt"

// Key prefixes for different data types
const (
	documentRecordPrefix = "docrec"
)

// makeDocumentKey generates a key for a document by name. Document names are
// unique, so the name itself is the primary key. Prefix iteration over
// documentRecordPrefix yields documents in name order.
func makeDocumentKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", documentRecordPrefix, name))
}
