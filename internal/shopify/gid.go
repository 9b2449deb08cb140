package shopify

import "strings"

// ProductGIDPrefix is the URI prefix of product global IDs
const ProductGIDPrefix = "gid://shopify/Product/"

// ProductGID turns a numeric product id ("123") into its global ID. Values that already
// carry the prefix are returned unchanged.
func ProductGID(id string) string {
	if strings.HasPrefix(id, ProductGIDPrefix) {
		return id
	}
	return ProductGIDPrefix + id
}

// ProductNumericID strips the product GID prefix ("gid://shopify/Product/123" -> "123").
func ProductNumericID(gid string) string {
	return strings.TrimPrefix(gid, ProductGIDPrefix)
}
