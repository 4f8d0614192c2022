// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package relay

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lightstake/sequencer/relaywire"
	"github.com/lightstake/sequencer/restutil"
)

// Mount registers the relay's REST surface onto router.
func (s *Server) Mount(router *mux.Router) {
	router.Path("/api/state").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(s.handlePostState))
	router.Path("/api/state").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(s.handleGetState))
	router.Path("/api/state/ws").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(s.handleStateWS))
}

func (s *Server) handlePostState(w http.ResponseWriter, r *http.Request) error {
	var body relaywire.StateSignatureRequestBody
	if err := restutil.ParseJSON(r.Body, &body); err != nil {
		return restutil.BadRequest(err)
	}

	key, err := body.Key.Decode()
	if err != nil {
		return restutil.BadRequest(err)
	}
	state, err := body.State.Decode()
	if err != nil {
		return restutil.BadRequest(err)
	}
	nextStake, err := body.NextStake.Decode()
	if err != nil {
		return restutil.BadRequest(err)
	}
	sig, err := relaywire.DecodeSignature(body.Signature)
	if err != nil {
		return restutil.BadRequest(err)
	}

	if err := s.PostSignature(r.Context(), key, state, nextStake, sig); err != nil {
		logger.Debug("rejected state signature", "requestId", requestID(r.Context()), "height", state.BlockHeight, "err", err)
		return mapError(err)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) error {
	bundle, ok := s.GetLatestBundle()
	if !ok {
		return restutil.HTTPError(ErrNotReady, http.StatusNotFound)
	}
	return restutil.WriteJSON(w, bundleToWire(bundle))
}

func bundleToWire(b *Bundle) relaywire.SignatureBundle {
	sigs := make([]relaywire.SignerSignature, 0, len(b.Signatures))
	for key, sig := range b.Signatures {
		sigs = append(sigs, relaywire.SignerSignature{
			Key:       relaywire.EncodeSchnorrPubKey(key),
			Signature: relaywire.EncodeSignature(sig),
		})
	}
	return relaywire.SignatureBundle{
		State:             relaywire.EncodeState(b.State),
		NextStake:         relaywire.EncodeStakeTableState(b.NextStake),
		Signatures:        sigs,
		AccumulatedWeight: b.AccumulatedWeight.Dec(),
	}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrUnknownSigner):
		return restutil.HTTPError(err, http.StatusUnauthorized)
	case errors.Is(err, ErrDuplicateSignature), errors.Is(err, ErrInvalidSignature):
		return restutil.BadRequest(err)
	case errors.Is(err, ErrInternalStakeTableSyncFailure):
		return restutil.HTTPError(err, http.StatusInternalServerError)
	default:
		return err
	}
}
