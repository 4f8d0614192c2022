// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package relay

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightstake/sequencer/lightclient"
	"github.com/lightstake/sequencer/relaywire"
)

func newTestRouter(srv *Server) http.Handler {
	r := mux.NewRouter()
	srv.Mount(r)
	return r
}

func postState(t *testing.T, handler http.Handler, key, state, next, sig string) *httptest.ResponseRecorder {
	t.Helper()
	body := relaywire.StateSignatureRequestBody{}
	require.NoError(t, json.Unmarshal([]byte(key), &body.Key))
	require.NoError(t, json.Unmarshal([]byte(state), &body.State))
	require.NoError(t, json.Unmarshal([]byte(next), &body.NextStake))
	body.Signature = sig
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/state", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandlers_PostThenGetState(t *testing.T) {
	seq, keys := fiveEqualSigners()
	srv := New(seq, alwaysValid{})
	handler := newTestRouter(srv)

	state := relaywire.EncodeState(lightclient.State{ViewNumber: 7, BlockHeight: 7})
	next := relaywire.EncodeStakeTableState(lightclient.StakeTableState{})
	stateJSON, _ := json.Marshal(state)
	nextJSON, _ := json.Marshal(next)

	for i := 0; i < 4; i++ {
		keyJSON, _ := json.Marshal(relaywire.EncodeSchnorrPubKey(keys[i]))
		rr := postState(t, handler, string(keyJSON), string(stateJSON), string(nextJSON), relaywire.EncodeSignature([]byte{byte(i)}))
		assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	getRR := httptest.NewRecorder()
	handler.ServeHTTP(getRR, getReq)
	require.Equal(t, http.StatusOK, getRR.Code)

	var bundle relaywire.SignatureBundle
	require.NoError(t, json.NewDecoder(getRR.Body).Decode(&bundle))
	assert.Equal(t, uint64(7), bundle.State.BlockHeight)
	assert.Equal(t, 4, len(bundle.Signatures))
	assert.Equal(t, "4", bundle.AccumulatedWeight)
}

func TestHandlers_GetState_NotReady(t *testing.T) {
	seq, _ := fiveEqualSigners()
	srv := New(seq, alwaysValid{})
	handler := newTestRouter(srv)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlers_PostState_UnknownSignerReturns401(t *testing.T) {
	seq, _ := fiveEqualSigners()
	srv := New(seq, alwaysValid{})
	handler := newTestRouter(srv)

	unknown := relaywire.EncodeSchnorrPubKey(testKey(250))
	state := relaywire.EncodeState(lightclient.State{ViewNumber: 1, BlockHeight: 1})
	next := relaywire.EncodeStakeTableState(lightclient.StakeTableState{})
	keyJSON, _ := json.Marshal(unknown)
	stateJSON, _ := json.Marshal(state)
	nextJSON, _ := json.Marshal(next)

	rr := postState(t, handler, string(keyJSON), string(stateJSON), string(nextJSON), relaywire.EncodeSignature([]byte{1}))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
