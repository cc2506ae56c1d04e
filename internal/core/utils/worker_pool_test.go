package utils_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ner-explorer/internal/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestRunInPool(t *testing.T) {
	worker := func(i int) (string, error) {
		if i%4 == 3 {
			time.Sleep(time.Duration(10-i) * time.Millisecond)
			return "", fmt.Errorf("error")
		}
		return fmt.Sprintf("%d-%d", i, i), nil
	}

	items := make([]int, 10)
	for i := range items {
		items[i] = i
	}

	success, failed := 0, 0
	for result := range utils.RunInPool(items, 5, worker) {
		if result.Error != nil {
			assert.Equal(t, 3, result.Input%4)
			failed++
		} else {
			assert.Equal(t, fmt.Sprintf("%d-%d", result.Input, result.Input), result.Result)
			success++
		}
	}

	assert.Equal(t, 8, success)
	assert.Equal(t, 2, failed)
}

func TestRunInPool_LimitsWorkers(t *testing.T) {
	var running, peak atomic.Int32
	worker := func(int) (struct{}, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return struct{}{}, nil
	}

	count := 0
	for range utils.RunInPool(make([]int, 12), 3, worker) {
		count++
	}

	assert.Equal(t, 12, count)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRunInPool_Empty(t *testing.T) {
	count := 0
	for range utils.RunInPool(nil, 4, func(int) (int, error) { return 0, nil }) {
		count++
	}
	assert.Zero(t, count)
}
