package alias

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mDuo13/txsplain/internal/storage/database"
	"github.com/ugorji/go/codec"
)

const kvDBName = "aliases"

var (
	kvPrefix = []byte("alias/")
	kvEnd    = []byte("alias/\xff")
)

// kvRecord is the msgpack value stored per address.
type kvRecord struct {
	Name    string `codec:"n"`
	Known   bool   `codec:"k"`
	Updated int64  `codec:"u"`
}

// KVStore keeps entries in a key/value database, one key per address.
type KVStore struct {
	manager database.Manager
	db      database.DB
	handle  *codec.MsgpackHandle
}

func NewKVStore(manager database.Manager) (*KVStore, error) {
	db, err := manager.OpenDB(kvDBName)
	if err != nil {
		return nil, fmt.Errorf("open alias database: %w", err)
	}
	return &KVStore{manager: manager, db: db, handle: &codec.MsgpackHandle{}}, nil
}

func kvKey(address string) []byte {
	return append(append([]byte{}, kvPrefix...), address...)
}

func (s *KVStore) Load(ctx context.Context) (map[string]Entry, error) {
	it, err := s.db.Iterator(ctx, kvPrefix, kvEnd)
	if err != nil {
		return nil, fmt.Errorf("iterate aliases: %w", err)
	}
	defer it.Close()

	out := make(map[string]Entry)
	for it.Next() {
		key := it.Key()
		if !bytes.HasPrefix(key, kvPrefix) {
			continue
		}
		var rec kvRecord
		if err := codec.NewDecoderBytes(it.Value(), s.handle).Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode alias %s: %w", key, err)
		}
		out[string(key[len(kvPrefix):])] = Entry{Name: rec.Name, Known: rec.Known}
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("iterate aliases: %w", err)
	}
	return out, nil
}

func (s *KVStore) Save(ctx context.Context, entries map[string]Entry) error {
	if len(entries) == 0 {
		return nil
	}
	now := time.Now().Unix()
	ops := make([]database.BatchOperation, 0, len(entries))
	for addr, e := range entries {
		if e.Transient {
			continue
		}
		var buf []byte
		rec := kvRecord{Name: e.Name, Known: e.Known, Updated: now}
		if err := codec.NewEncoderBytes(&buf, s.handle).Encode(rec); err != nil {
			return fmt.Errorf("encode alias %s: %w", addr, err)
		}
		ops = append(ops, database.Put(kvKey(addr), buf))
	}
	if err := s.db.Batch(ctx, ops); err != nil {
		return fmt.Errorf("save aliases: %w", err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, address string) error {
	err := s.db.Delete(ctx, kvKey(address))
	if err != nil && !errors.Is(err, database.ErrKeyNotFound) {
		return fmt.Errorf("delete alias %s: %w", address, err)
	}
	return nil
}

func (s *KVStore) Close() error {
	return s.manager.Close()
}
