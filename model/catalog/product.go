package catalog

import (
	"fmt"
	"strings"
)

// Product is a pinnable catalog item. ID is synthesized at fetch time and is
// not a server identifier.
type Product struct {
	ID          string   `json:"id"`
	ImageURL    string   `json:"imageUrl"`
	Name        string   `json:"name"`
	ProductCode string   `json:"productCode"`
	Price       *float64 `json:"price,omitempty"`
}

// SyntheticID disambiguates products that share a code within one fetch.
func SyntheticID(productCode string, index int) string {
	return fmt.Sprintf("%s-%d", productCode, index)
}

// DisplayName keeps only the last whitespace-delimited token of name.
func DisplayName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
