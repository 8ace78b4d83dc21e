package observable

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_SubscribeReceivesCurrentValueFirst(t *testing.T) {
	v := NewValue("a")
	v.Set("b")

	var got []string
	cancel := v.Subscribe(func(s string) { got = append(got, s) })
	defer cancel()

	require.Equal(t, []string{"b"}, got)

	v.Set("c")
	require.Equal(t, []string{"b", "c"}, got)
}

func TestValue_SetNotifiesAllBeforeReturning(t *testing.T) {
	v := NewValue(0)

	var a, b int
	v.Subscribe(func(n int) { a = n })
	v.Subscribe(func(n int) { b = n })

	v.Set(42)
	assert.Equal(t, 42, a)
	assert.Equal(t, 42, b)
	assert.Equal(t, 42, v.Get())
}

func TestValue_CancelStopsNotifications(t *testing.T) {
	v := NewValue(0)
	calls := 0
	cancel := v.Subscribe(func(int) { calls++ })
	cancel()
	cancel()

	v.Set(1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, v.Subscribers())
}

func TestValue_UpdateIsAtomic(t *testing.T) {
	v := NewValue(0)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Update(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, v.Get())
}

func TestLive_ReloadsOnEveryBump(t *testing.T) {
	src := NewCounter()
	data := []int{1}

	l := NewLive(src, []int(nil), func() ([]int, error) {
		return append([]int(nil), data...), nil
	}, nil)
	defer l.Close()

	require.Equal(t, []int{1}, l.Get())

	data = append(data, 2)
	src.Bump()
	require.Equal(t, []int{1, 2}, l.Get())
}

func TestLive_ErrorFallsBackAndReports(t *testing.T) {
	src := NewCounter()
	fail := false
	var reported error

	l := NewLive(src, -1, func() (int, error) {
		if fail {
			return 0, errors.New("boom")
		}
		return 7, nil
	}, func(err error) { reported = err })

	require.Equal(t, 7, l.Get())

	fail = true
	src.Bump()
	assert.Equal(t, -1, l.Get())
	assert.EqualError(t, reported, "boom")
}

func TestLive_CloseStopsFollowing(t *testing.T) {
	src := NewCounter()
	n := 0
	l := NewLive(src, 0, func() (int, error) { n++; return n, nil }, nil)
	l.Close()

	src.Bump()
	assert.Equal(t, 1, l.Get())
	assert.Equal(t, 0, src.Subscribers())
}
