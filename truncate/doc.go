// Package truncate fits long text into token budgets.
//
// A Truncator cuts a single text down to a budget, dropping the end, the
// middle or the start and marking the cut:
//
//	tr := truncate.New(truncate.FromMiddle, truncate.WithCounter(counter))
//	clipped, cut := tr.Truncate(text, 1500)
//
// Split breaks a document into consecutive chunks that each fit a budget,
// preferring paragraph and then line boundaries, so that each chunk can be
// sent as its own request:
//
//	for _, chunk := range truncate.Split(doc, 1500, counter) {
//	    ...
//	}
//
// Lengths are measured in runes, so multi-byte characters are never split.
package truncate
