// Package dbtest holds the behaviour every database backend must share.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/mDuo13/txsplain/internal/storage/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a Manager against the database.DB contract.
func Run(t *testing.T, manager database.Manager) {
	ctx := context.Background()

	t.Run("ReadWriteDelete", func(t *testing.T) {
		db, err := manager.OpenDB("rwd")
		require.NoError(t, err)

		_, err = db.Read(ctx, []byte("missing"))
		assert.ErrorIs(t, err, database.ErrKeyNotFound)

		require.NoError(t, db.Write(ctx, []byte("rAlice"), []byte("alice")))
		got, err := db.Read(ctx, []byte("rAlice"))
		require.NoError(t, err)
		assert.Equal(t, []byte("alice"), got)

		require.NoError(t, db.Write(ctx, []byte("rAlice"), []byte("alice2")))
		got, err = db.Read(ctx, []byte("rAlice"))
		require.NoError(t, err)
		assert.Equal(t, []byte("alice2"), got)

		require.NoError(t, db.Delete(ctx, []byte("rAlice")))
		_, err = db.Read(ctx, []byte("rAlice"))
		assert.ErrorIs(t, err, database.ErrKeyNotFound)
	})

	t.Run("Batch", func(t *testing.T) {
		db, err := manager.OpenDB("batch")
		require.NoError(t, err)

		require.NoError(t, db.Write(ctx, []byte("gone"), []byte("x")))
		err = db.Batch(ctx, []database.BatchOperation{
			database.Put([]byte("k1"), []byte("v1")),
			database.Put([]byte("k2"), []byte("v2")),
			database.Del([]byte("gone")),
		})
		require.NoError(t, err)

		for _, k := range []string{"k1", "k2"} {
			v, err := db.Read(ctx, []byte(k))
			require.NoError(t, err)
			assert.Equal(t, "v"+k[1:], string(v))
		}
		_, err = db.Read(ctx, []byte("gone"))
		assert.ErrorIs(t, err, database.ErrKeyNotFound)

		err = db.Batch(ctx, []database.BatchOperation{{Type: database.BatchOpType(42), Key: []byte("x")}})
		assert.ErrorIs(t, err, database.ErrUnknownBatchOp)
	})

	t.Run("Iterator", func(t *testing.T) {
		db, err := manager.OpenDB("iter")
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			require.NoError(t, db.Write(ctx, []byte(fmt.Sprintf("key%d", i)), []byte(fmt.Sprintf("val%d", i))))
		}

		collect := func(start, end []byte) []string {
			it, err := db.Iterator(ctx, start, end)
			require.NoError(t, err)
			defer it.Close()
			var keys []string
			for it.Next() {
				keys = append(keys, string(it.Key()))
				assert.Equal(t, "val"+string(it.Key())[3:], string(it.Value()))
			}
			require.NoError(t, it.Error())
			return keys
		}

		assert.Equal(t, []string{"key0", "key1", "key2", "key3", "key4"}, collect(nil, nil))
		assert.Equal(t, []string{"key1", "key2", "key3"}, collect([]byte("key1"), []byte("key3")))
		assert.Equal(t, []string{"key3", "key4"}, collect([]byte("key3"), nil))
	})

	t.Run("Reopen", func(t *testing.T) {
		db, err := manager.OpenDB("reopen")
		require.NoError(t, err)
		require.NoError(t, db.Write(ctx, []byte("persist"), []byte("yes")))
		require.NoError(t, manager.CloseDB("reopen"))

		db, err = manager.OpenDB("reopen")
		require.NoError(t, err)
		v, err := db.Read(ctx, []byte("persist"))
		require.NoError(t, err)
		assert.Equal(t, "yes", string(v))
	})

	t.Run("CanceledContext", func(t *testing.T) {
		db, err := manager.OpenDB("cancel")
		require.NoError(t, err)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, db.Write(cctx, []byte("k"), []byte("v")), context.Canceled)
	})

	t.Run("CloseUnknown", func(t *testing.T) {
		assert.ErrorIs(t, manager.CloseDB("never-opened"), database.ErrUnknownDB)
	})
}
