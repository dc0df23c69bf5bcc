package kquant

import "fmt"

// InvalidImageError is returned when an image cannot be
// turned into a pixel collection.
type InvalidImageError struct {
	Reason string
}

func (i *InvalidImageError) Error() string {
	return "invalid image: " + i.Reason
}

// ShapeMismatchError indicates that a pixel collection does
// not match the dimensions it is being paired with.
//
// This signals a programming error rather than bad input.
type ShapeMismatchError struct {
	Width    int
	Height   int
	Expected int
	Actual   int
}

func (s *ShapeMismatchError) Error() string {
	if s.Width == 0 && s.Height == 0 {
		return fmt.Sprintf("shape mismatch: expected %d entries but got %d", s.Expected, s.Actual)
	}
	return fmt.Sprintf("shape mismatch: %dx%d image needs %d pixels but got %d",
		s.Width, s.Height, s.Expected, s.Actual)
}

// InvalidClusterCountError is returned when K is outside of
// [1, len(pixels)].
type InvalidClusterCountError struct {
	K         int
	NumPixels int
}

func (i *InvalidClusterCountError) Error() string {
	return fmt.Sprintf("invalid cluster count %d: must be in [1, %d]", i.K, i.NumPixels)
}
