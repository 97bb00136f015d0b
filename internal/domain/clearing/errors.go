package clearing

import "fmt"

// ErrUnknownCommodity reports a commodity this market does not clear.
// Resolve never returns it: Resolve clears only the commodities that
// already have a book in this market.
var ErrUnknownCommodity = fmt.Errorf("clearing: market does not clear this commodity")
