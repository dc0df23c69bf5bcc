// Package locate picks the first existing file out of an
// ordered list of candidates.
package locate

import (
	"os"
	"strings"
)

// DefaultCandidates lists the input locations probed when
// nothing else is configured.
var DefaultCandidates = []string{
	"images/test.jpg",
	"test.jpg",
	"images/test.png",
	"test.png",
	"images/test.jpeg",
	"test.jpeg",
}

// A Resolution is the outcome of probing candidates.
type Resolution struct {
	// Path is the first candidate that exists. It is empty
	// if Found is false.
	Path  string
	Found bool

	// Candidates contains every probed path, in order.
	Candidates []string
}

// Err returns a *NotFoundError if no candidate existed.
func (r Resolution) Err() error {
	if r.Found {
		return nil
	}
	return &NotFoundError{Candidates: r.Candidates}
}

// Resolve returns the first candidate which exists and is
// a regular file.
func Resolve(candidates []string) Resolution {
	res := Resolution{Candidates: append([]string{}, candidates...)}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			res.Path = path
			res.Found = true
			break
		}
	}
	return res
}

// NotFoundError indicates that none of the candidates
// existed.
type NotFoundError struct {
	Candidates []string
}

func (n *NotFoundError) Error() string {
	var b strings.Builder
	b.WriteString("no input image found; place one at any of:")
	for _, c := range n.Candidates {
		b.WriteString("\n  - ")
		b.WriteString(c)
	}
	return b.String()
}
