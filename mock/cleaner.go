package mock

import "github.com/wikimeta/commonsmeta"

var _ commonsmeta.DescriptionCleaner = (*DescriptionCleaner)(nil)

// DescriptionCleaner is a mock implementation of commonsmeta.DescriptionCleaner.
type DescriptionCleaner struct {
	CleanFn func(fragment string) (string, error)
}

func (c *DescriptionCleaner) Clean(fragment string) (string, error) {
	return c.CleanFn(fragment)
}
