// Package currencies exposes a currency catalog over net/http so client side
// price inputs can list the available currencies and round-trip amounts
// through the server's locale rules.
//
// The handler answers GET and HEAD requests on three routes below the mount
// path: the list itself (optionally filtered by q and limit), /format which
// renders a canonical number for display, and /parse which turns localized
// text back into a canonical price or answers 422.
package currencies
