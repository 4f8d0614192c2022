// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package committee

import (
	"github.com/lightstake/sequencer/chainkit"
)

// halfMax is U256::MAX/2, the pivot deciding whether the naive
// 2*total / 9*total multiply would overflow.
var halfMax = func() *chainkit.U256 {
	max := new(chainkit.U256).Not(chainkit.ZeroU256()) // all-ones == U256::MAX
	return new(chainkit.U256).Rsh(max, 1)
}()

// SuccessThreshold computes floor(2*total/3)+1, using the
// algebraically equivalent floor(total/3)*2+2 form whenever
// total >= U256::MAX/2 to avoid overflowing the 2*total multiply.
func SuccessThreshold(total *chainkit.U256) *chainkit.U256 {
	three := chainkit.NewU256(3)
	if total.Cmp(halfMax) >= 0 {
		div := new(chainkit.U256).Div(total, three)
		two := chainkit.NewU256(2)
		return chainkit.AddU256(new(chainkit.U256).Mul(div, two), two)
	}
	two := chainkit.NewU256(2)
	num := new(chainkit.U256).Mul(total, two)
	div := new(chainkit.U256).Div(num, three)
	return chainkit.AddU256(div, chainkit.NewU256(1))
}

// FailureThreshold computes floor(total/3)+1. Plain
// integer division never overflows, so no guard is needed.
func FailureThreshold(total *chainkit.U256) *chainkit.U256 {
	three := chainkit.NewU256(3)
	div := new(chainkit.U256).Div(total, three)
	return chainkit.AddU256(div, chainkit.NewU256(1))
}

// UpgradeThreshold computes max(success, floor(9*total/10)), using
// the overflow-safe floor(total/10)*9 form whenever
// total >= U256::MAX/2, matching SuccessThreshold's guard.
func UpgradeThreshold(total *chainkit.U256) *chainkit.U256 {
	ten := chainkit.NewU256(10)
	var ninety *chainkit.U256
	if total.Cmp(halfMax) >= 0 {
		div := new(chainkit.U256).Div(total, ten)
		ninety = new(chainkit.U256).Mul(div, chainkit.NewU256(9))
	} else {
		num := new(chainkit.U256).Mul(total, chainkit.NewU256(9))
		ninety = new(chainkit.U256).Div(num, ten)
	}
	success := SuccessThreshold(total)
	if ninety.Cmp(success) > 0 {
		return ninety
	}
	return success
}
