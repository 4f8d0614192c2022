// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBetter_FewerFailuresPerRequestWins(t *testing.T) {
	reliable := score{requests: 100, failures: 1}
	flaky := score{requests: 100, failures: 50}
	assert.True(t, better(reliable, flaky))
	assert.False(t, better(flaky, reliable))
}

func TestBetter_UntestedEndpointsTie(t *testing.T) {
	a := score{}
	b := score{}
	assert.False(t, better(a, b))
	assert.False(t, better(b, a))
}

func TestBetter_ScaleInvariant(t *testing.T) {
	// 1/10 failure rate vs 10/100 failure rate: equal rates, should tie
	// despite very different absolute counts (this is the point of the
	// cross-multiplication: no floating point, no bias from volume).
	a := score{requests: 10, failures: 1}
	b := score{requests: 100, failures: 10}
	assert.False(t, better(a, b))
	assert.False(t, better(b, a))
}
