package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key any, value any) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// AppendToList adds v to the end of the list stored by key. The key holds
// list length and each item is stored separately under key followed by its
// 1-based position, so the cost of an append does not depend on list size.
// Keys of different lists must not be prefixes of each other, use ListKey or
// AddressKey to build them.
func AppendToList(ctx storage.Context, key []byte, v any) {
	n := LastID(ctx, key) + 1
	storage.Put(ctx, key, n)
	storage.Put(ctx, listItemKey(key, n), v)
}

// ListLen returns number of items in the list stored by key.
func ListLen(ctx storage.Context, key []byte) int {
	return LastID(ctx, key)
}

// ListItem returns n-th (starting from 1) item of the list stored by key.
func ListItem(ctx storage.Context, key []byte, n int) any {
	return storage.Get(ctx, listItemKey(key, n))
}

// GetIntList returns all items of the integer list stored by key in order of
// appending.
func GetIntList(ctx storage.Context, key []byte) []int {
	n := ListLen(ctx, key)

	res := []int{}
	for i := 1; i <= n; i++ {
		res = append(res, ListItem(ctx, key, i).(int))
	}
	return res
}

// GetHashList returns all items of the script hash list stored by key in
// order of appending.
func GetHashList(ctx storage.Context, key []byte) []interop.Hash160 {
	n := ListLen(ctx, key)

	res := []interop.Hash160{}
	for i := 1; i <= n; i++ {
		res = append(res, ListItem(ctx, key, i).(interop.Hash160))
	}
	return res
}

// NextID increments the sequence stored by key and returns its new value.
// Sequences start at 1.
func NextID(ctx storage.Context, key any) int {
	id := LastID(ctx, key) + 1
	storage.Put(ctx, key, id)
	return id
}

// LastID returns current value of the sequence stored by key, 0 if nothing
// has been allocated yet.
func LastID(ctx storage.Context, key any) int {
	v := storage.Get(ctx, key)
	if v == nil {
		return 0
	}
	return v.(int)
}

// IDKey returns storage key made of a one-byte prefix and an integer
// identifier.
func IDKey(prefix byte, id int) []byte {
	return append([]byte{prefix}, convert.ToBytes(id)...)
}

// AddressKey returns storage key made of a one-byte prefix and a script hash.
func AddressKey(prefix byte, h interop.Hash160) []byte {
	return append([]byte{prefix}, h...)
}

// ListKey returns storage key of a list owned by an integer identifier.
// Identifier bytes are preceded by their length, so the key is never a prefix
// of a key of another identifier.
func ListKey(prefix byte, id int) []byte {
	b := convert.ToBytes(id)
	key := append([]byte{prefix}, convert.ToBytes(len(b))...)
	return append(key, b...)
}

func listItemKey(key []byte, n int) []byte {
	return append(key, convert.ToBytes(n)...)
}

// SlotKey returns storage key for a per-slot value of an identifier. Slot is
// a small enumeration value (below 127) and is encoded as a single byte placed
// before the identifier so that keys stay unambiguous.
func SlotKey(prefix byte, slot, id int) []byte {
	key := append([]byte{prefix}, convert.ToBytes(slot+1)...)
	return append(key, convert.ToBytes(id)...)
}
