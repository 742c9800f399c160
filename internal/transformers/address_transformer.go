package transformers

import (
	"strings"
)

type addressTransformer struct{}

func NewAddressTransformer() AddressTransformer {
	return &addressTransformer{}
}

// NormalizeEircode uppercases the code and formats it as "D02 XY45" when it has seven characters.
func (t *addressTransformer) NormalizeEircode(input string) string {
	compact := strings.ToUpper(strings.Join(strings.Fields(input), ""))
	if len(compact) == 7 {
		return compact[:3] + " " + compact[3:]
	}
	return compact
}

// NormalizeAddress trims the address and collapses runs of whitespace.
func (t *addressTransformer) NormalizeAddress(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
