/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package grid

import "sort"

// OffsetCache holds the cumulative bottoms of the rendered rows, measured
// from the top of the first rendered row.
type OffsetCache struct {
	bottoms []float64
}

// Reset empties the cache for a new pass.
func (c *OffsetCache) Reset() {
	c.bottoms = c.bottoms[:0]
}

// Append records a row of height h below the previous ones.  Negative
// heights count as zero.
func (c *OffsetCache) Append(h float64) {
	if h < 0 {
		h = 0
	}
	c.bottoms = append(c.bottoms, c.Total()+h)
}

// Len is the number of rows recorded.
func (c *OffsetCache) Len() int { return len(c.bottoms) }

// At returns the bottom of row k.
func (c *OffsetCache) At(k int) float64 { return c.bottoms[k] }

// Top returns the top of row k.
func (c *OffsetCache) Top(k int) float64 {
	if k <= 0 {
		return 0
	}
	return c.bottoms[k-1]
}

// Total is the height of every recorded row.
func (c *OffsetCache) Total() float64 {
	if len(c.bottoms) == 0 {
		return 0
	}
	return c.bottoms[len(c.bottoms)-1]
}

// Find returns the row containing offset y, or -1 when y is outside
// [0, Total].  A y on a boundary belongs to the row below it; the very
// bottom belongs to the last row.
func (c *OffsetCache) Find(y float64) int {
	if y < 0 || len(c.bottoms) == 0 || y > c.Total() {
		return -1
	}
	k := sort.Search(len(c.bottoms), func(i int) bool { return c.bottoms[i] > y })
	if k == len(c.bottoms) {
		k--
	}
	return k
}

// Values returns a copy of the cumulative bottoms.
func (c *OffsetCache) Values() []float64 {
	return append([]float64(nil), c.bottoms...)
}
