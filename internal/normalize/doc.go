// Package normalize turns raw marketplace API records into the canonical
// order, dispute and review records the admin dashboard works with, and
// buckets them by status tab and by rolling period.
//
// Everything here is pure and synchronous: no I/O, no caching, no shared
// mutable state. Malformed input never produces an error; it degrades to a
// sentinel value ("N/A", "Unknown Store", 0, ""), to the "unknown" status
// tag, or, under a period filter, to exclusion.
//
//	payload := normalize.ExtractList(decoded, nil)
//	orders := normalize.New(normalize.WithCurrency("$")).Orders(payload)
//	delivered := normalize.FilterTab(orders, normalize.DomainOrders, "delivered")
//	recent := normalize.FilterPeriod(delivered, normalize.LastMonth, normalize.OrderDateFields, time.Now())
package normalize
