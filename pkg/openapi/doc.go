// Package openapi discovers price elements in OpenAPI 3 documents. Schemas
// and properties flagged with the x-formgen-widget extension, or shaped like
// a price (format "price", or an object of number and currency_code), become
// price.Config values the host can build directly.
package openapi
