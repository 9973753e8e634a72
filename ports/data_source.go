package ports

import (
	"inflammation/domain/dataset"
)

// DataSourcePort discovers inflammation files in a directory and loads them
// lazily, one table per file.
//
// The returned sequence is single-pass: ranging over it a second time yields
// core.ErrSequenceConsumed. Discovery happens when LoadInflammationData is
// called and fails with core.ErrNotFound if nothing matches; each file is
// opened, parsed and closed only when the consumer reaches it.
type DataSourcePort interface {
	LoadInflammationData() (dataset.TableSeq, error)
}
