package leveldb

import (
	"testing"

	"github.com/mDuo13/txsplain/internal/storage/database/dbtest"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	manager := NewManager(t.TempDir())
	defer func() {
		require.NoError(t, manager.Close())
	}()

	dbtest.Run(t, manager)
}
