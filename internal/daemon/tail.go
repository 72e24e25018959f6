package daemon

import (
	"bytes"
	"strconv"
)

// tailBytes returns the last n lines of data, where n comes in as a query
// string value. A bad or non-positive value, or fewer than n lines, means
// the whole log.
func tailBytes(data []byte, tail string) []byte {
	n, err := strconv.Atoi(tail)
	if err != nil || n <= 0 {
		return data
	}

	trimmed := bytes.TrimRight(data, "\n")
	idx := len(trimmed)
	for lines := 0; lines < n; lines++ {
		next := bytes.LastIndexByte(trimmed[:idx], '\n')
		if next < 0 {
			return data
		}
		idx = next
	}
	return data[idx+1:]
}
