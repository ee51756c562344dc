package idgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	BikePrefix = "BIKE"
	maxSuffix  = 9999
)

var ErrExhausted = errors.New("id sequence exhausted")

// Sequence issues ids of the form <prefix>-NNNN.
type Sequence struct {
	Prefix string
}

func (s Sequence) Start() string { return s.format(1) }

// Next returns the id following last. A missing or malformed last id
// restarts the sequence.
func (s Sequence) Next(last string, ok bool) (string, error) {
	if !ok {
		return s.Start(), nil
	}
	i := strings.LastIndex(last, "-")
	if i < 0 || last[:i] != s.Prefix {
		return s.Start(), nil
	}
	n, err := strconv.Atoi(last[i+1:])
	if err != nil || n < 0 {
		return s.Start(), nil
	}
	if n >= maxSuffix {
		return "", fmt.Errorf("%w: %s", ErrExhausted, last)
	}
	return s.format(n + 1), nil
}

func (s Sequence) format(n int) string {
	return fmt.Sprintf("%s-%04d", s.Prefix, n)
}
