// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPHandler serves the Prometheus exposition format once metrics
// collection is enabled; before InitializePrometheusMetrics is
// called it 404s, so mounting it unconditionally is always safe.
func HTTPHandler() http.Handler {
	if _, ok := current().(*promMetrics); ok {
		return promhttp.Handler()
	}
	return http.NotFoundHandler()
}
