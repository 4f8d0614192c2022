// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package relay

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// bundlePushBuffer bounds how many un-delivered promotions a slow
// subscriber can queue; further promotions to it are dropped.
const bundlePushBuffer = 8

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// subscribe registers a channel that receives every subsequently
// promoted bundle; unsubscribe must be called to release it.
func (s *Server) subscribe() chan *Bundle {
	ch := make(chan *Bundle, bundlePushBuffer)
	s.subsMu.Lock()
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan *Bundle) {
	s.subsMu.Lock()
	delete(s.subs, ch)
	s.subsMu.Unlock()
}

// broadcast fans out a newly promoted bundle to every subscriber,
// dropping it for any subscriber whose buffer is full rather than
// blocking the caller.
func (s *Server) broadcast(b *Bundle) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- b:
		default:
			logger.Debug("dropping bundle push for slow websocket subscriber")
		}
	}
}

// handleStateWS upgrades to a websocket and streams every promoted
// bundle as JSON until the client disconnects.
func (s *Server) handleStateWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case b := <-ch:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(bundleToWire(b)); err != nil {
				return nil
			}
		}
	}
}
