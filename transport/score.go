// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transport

// score holds the running reliability counters for one endpoint. All
// fields are plain uint64 counters; ordering between two scores never
// uses floating point.
type score struct {
	requests uint64
	failures uint64
}

// better reports whether a should be preferred over b. A provider with
// fewer failures per request wins; the comparison cross-multiplies to
// stay in integer arithmetic: a is better when
//
//	a.failures * b.requests < b.failures * a.requests
//
// i.e. a's failure rate is below b's. An untested endpoint
// (requests=0) ties with everything, including another untested
// endpoint. Ties resolve false here; the caller breaks ties by
// insertion order.
func better(a, b score) bool {
	return a.failures*b.requests < b.failures*a.requests
}
