// Package chunk partitions an ordered keyed collection into bounded-size
// chunks. Every key of the input lands in exactly one chunk, chunk order
// follows the input's key order, and no chunk is ever empty.
package chunk

import (
	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
)

// Split partitions items into chunks of at most size entries each, preserving
// the collection's key order. It produces ceil(items.Len()/size) chunks; the
// last chunk may be smaller. An empty or nil input produces zero chunks.
func Split(items *model.ItemCollection, size int) []*model.Chunk {
	if items == nil || items.Len() == 0 {
		return nil
	}
	if size < 1 {
		size = 1
	}

	chunks := make([]*model.Chunk, 0, (items.Len()+size-1)/size)
	working := model.NewItemCollection()
	items.Range(func(key string, value interface{}) bool {
		working.Put(key, value)
		if working.Len() == size {
			chunks = append(chunks, working)
			working = model.NewItemCollection()
		}
		return true
	})
	if working.Len() > 0 {
		chunks = append(chunks, working)
	}
	return chunks
}
