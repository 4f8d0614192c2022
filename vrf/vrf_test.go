// Copyright (c) 2022 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vrf_test

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/lightstake/sequencer/vrf"
)

func TestProveVerify_RoundTrip(t *testing.T) {
	sk, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	alpha := []byte("Hello VeChain")

	beta, pi, err := vrf.Prove(sk, alpha)
	if err != nil {
		t.Fatalf("vrf.Prove() error = %v", err)
	}

	gotBeta, err := vrf.Verify(&sk.PublicKey, alpha, pi)
	if err != nil {
		t.Fatalf("vrf.Verify() error = %v", err)
	}
	if !bytes.Equal(beta, gotBeta) {
		t.Errorf("vrf.Verify() beta = %x, want %x", gotBeta, beta)
	}
}

func TestVerify_WrongMessageFails(t *testing.T) {
	sk, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	_, pi, err := vrf.Prove(sk, []byte("Hello VeChain"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := vrf.Verify(&sk.PublicKey, []byte("wrong message"), pi); err == nil {
		t.Error("vrf.Verify() should reject a proof against a different alpha")
	}
}

func TestVerify_WrongKeyFails(t *testing.T) {
	sk1, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	sk2, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	alpha := []byte("Hello VeChain")

	_, pi, err := vrf.Prove(sk1, alpha)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := vrf.Verify(&sk2.PublicKey, alpha, pi); err == nil {
		t.Error("vrf.Verify() should reject a proof against the wrong public key")
	}
}

func BenchmarkVRF(b *testing.B) {
	b.Run("vrf-proving", func(b *testing.B) {
		sk, _ := crypto.GenerateKey()
		alpha := []byte("Hello VeChain")

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, _, err := vrf.Prove(sk, alpha); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("vrf-verifying", func(b *testing.B) {
		sk, _ := crypto.GenerateKey()
		alpha := []byte("Hello VeChain")

		_, pi, _ := vrf.Prove(sk, alpha)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := vrf.Verify(&sk.PublicKey, alpha, pi); err != nil {
				b.Fatal(err)
			}
		}
	})
}
