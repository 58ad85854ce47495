package memo

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_ComputesOnce(t *testing.T) {
	var calls atomic.Int64
	m := New(func() ([]string, error) {
		calls.Add(1)
		return []string{"a", "b"}, nil
	})

	first, err := m.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first)

	second, err := m.Get()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, int64(1), calls.Load())
}

func TestMemo_ConcurrentFirstAccess(t *testing.T) {
	var calls atomic.Int64
	m := New(func() (int, error) {
		calls.Add(1)
		return 42, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := m.Get()
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
}

func TestMemo_ErrorNotCached(t *testing.T) {
	var calls atomic.Int64
	m := New(func() (int, error) {
		if calls.Add(1) == 1 {
			return 0, eris.New("source unreadable")
		}
		return 7, nil
	})

	_, err := m.Get()
	require.Error(t, err)

	v, err := m.Get()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, int64(2), calls.Load())
}
