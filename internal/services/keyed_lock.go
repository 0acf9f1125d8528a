package services

import "sync"

const keyedMutexShards = 64

// keyedMutex provides striped per-key locking. Keys hash to a fixed number
// of shards, so unrelated keys may occasionally share a lock; correctness
// only requires that equal keys always map to the same mutex.
type keyedMutex struct {
	shards [keyedMutexShards]sync.Mutex
}

// lock acquires the shard for id and returns it so the caller can defer Unlock.
func (k *keyedMutex) lock(id int64) *sync.Mutex {
	m := &k.shards[uint64(id)%keyedMutexShards]
	m.Lock()
	return m
}
