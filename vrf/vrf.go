// Copyright (c) 2022 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vrf wraps the ECVRF-SECP256K1-SHA256-TAI verifiable random
// function used to derive the per-epoch distributed-randomness-beacon
// seed (package drb). The VRF math itself lives in
// github.com/vechain/go-ecvrf; this package is a thin adapter pinning
// the one suite this repo uses.
package vrf

import (
	"crypto/ecdsa"

	"github.com/vechain/go-ecvrf"
)

// Prove computes the VRF proof pi and output beta for alpha under sk.
func Prove(sk *ecdsa.PrivateKey, alpha []byte) (beta, pi []byte, err error) {
	return ecvrf.Secp256k1Sha256Tai.Prove(sk, alpha)
}

// Verify checks proof pi against alpha and pk, returning the VRF
// output beta on success.
func Verify(pk *ecdsa.PublicKey, alpha, pi []byte) (beta []byte, err error) {
	return ecvrf.Secp256k1Sha256Tai.Verify(pk, alpha, pi)
}
