package cache

import "errors"

// ErrCorrupt marks an entry that could not be decoded. Backends report it
// as a miss after removing the entry; it surfaces only from [Decode].
var ErrCorrupt = errors.New("corrupt cache entry")
