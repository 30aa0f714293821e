package mock

import (
	amazonapi "github.com/belo-research/amazon-product-api"
)

var _ amazonapi.Converter = (*Converter)(nil)

// Converter is a mock implementation of amazonapi.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
