package wavefront

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelForVisitsEveryIndexExactlyOnce(t *testing.T) {
	const n = 777
	var counts [n]int32
	parallelFor(n, func(i int) {
		atomic.AddInt32(&counts[i], 1)
	})
	for i, c := range counts {
		assert.Equal(t, int32(1), c, "index %d visited %d times", i, c)
	}
}

func TestParallelForHandlesSmallN(t *testing.T) {
	var sum int32
	parallelFor(1, func(i int) { atomic.AddInt32(&sum, int32(i+1)) })
	assert.Equal(t, int32(1), sum)
}

func TestCompactKeepsOnlyAliveInOrder(t *testing.T) {
	d := &Driver{}
	paths := []PathSegment{
		{PixelIndex: 0, Alive: true},
		{PixelIndex: 1, Alive: false},
		{PixelIndex: 2, Alive: true},
		{PixelIndex: 3, Alive: false},
		{PixelIndex: 4, Alive: true},
	}
	out := d.compact(paths)
	assert.Len(t, out, 3)
	assert.Equal(t, []int{0, 2, 4}, []int{out[0].PixelIndex, out[1].PixelIndex, out[2].PixelIndex})
}
