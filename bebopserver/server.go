// server.go

// Copyright (C) 2018  Steve Merrony

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package bebopserver exposes a bebop session over HTTP.
// Flight commands are REST routes, the raw video stream is relayed over a WebSocket.
package bebopserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/SMerrony/bebop"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Drone is the part of a bebop session the server drives; *bebop.Bebop satisfies it
type Drone interface {
	TakeOff() error
	Land() error
	Emergency() error
	FlatTrim() error
	EnableVideo() error
	Hover()
	SetIntent(pi bebop.PilotingIntent)
	Intent() bebop.PilotingIntent
	Err() error
	Done() <-chan struct{}
}

// VideoSource supplies raw video datagrams; *bebop.VideoStream satisfies it
type VideoSource interface {
	Read() ([]byte, error)
}

var (
	_ Drone       = (*bebop.Bebop)(nil)
	_ VideoSource = (*bebop.VideoStream)(nil)
)

// Server routes HTTP requests to a Drone
type Server struct {
	drone    Drone
	video    VideoSource // may be nil
	router   *mux.Router
	upgrader websocket.Upgrader
}

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Running bool                 `json:"running"`
	Error   string               `json:"error,omitempty"`
	Intent  bebop.PilotingIntent `json:"intent"`
}

// New returns a Server for drone; video may be nil if no stream is wanted
func New(drone Drone, video VideoSource) *Server {
	s := &Server{
		drone: drone,
		video: video,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
	}

	r := mux.NewRouter()
	r.HandleFunc("/takeoff", s.commandHandler(drone.TakeOff)).Methods("POST")
	r.HandleFunc("/land", s.commandHandler(drone.Land)).Methods("POST")
	r.HandleFunc("/emergency", s.commandHandler(drone.Emergency)).Methods("POST")
	r.HandleFunc("/flattrim", s.commandHandler(drone.FlatTrim)).Methods("POST")
	r.HandleFunc("/video", s.commandHandler(drone.EnableVideo)).Methods("POST")
	r.HandleFunc("/video", s.videoHandler).Methods("GET")
	r.HandleFunc("/hover", s.hoverHandler).Methods("POST")
	r.HandleFunc("/pcmd", s.pcmdHandler).Methods("PUT")
	r.HandleFunc("/status", s.statusHandler).Methods("GET")
	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) commandHandler(cmd func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := cmd(); err != nil {
			respondError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
		respondEmpty(w)
	}
}

func (s *Server) hoverHandler(w http.ResponseWriter, r *http.Request) {
	s.drone.Hover()
	respondEmpty(w)
}

func (s *Server) pcmdHandler(w http.ResponseWriter, r *http.Request) {
	var req bebop.PilotingIntent

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Bad request!")
		return
	}
	for _, v := range []struct {
		name  string
		value int
	}{{"roll", req.Roll}, {"pitch", req.Pitch}, {"yaw", req.Yaw}, {"gaz", req.Gaz}} {
		if v.value < -100 || v.value > 100 {
			respondError(w, r, http.StatusBadRequest, fmt.Sprintf("%s must be between -100 and 100, got %d", v.name, v.value))
			return
		}
	}

	s.drone.SetIntent(req)
	respondEmpty(w)
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := statusResponse{
		Running: true,
		Intent:  s.drone.Intent(),
	}
	select {
	case <-s.drone.Done():
		status.Running = false
	default:
	}
	if err := s.drone.Err(); err != nil {
		status.Running = false
		status.Error = err.Error()
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(status)
}

// videoHandler relays each datagram as one binary message until either side goes away.
// Concurrent viewers share the datagrams between them.
func (s *Server) videoHandler(w http.ResponseWriter, r *http.Request) {
	if s.video == nil {
		respondError(w, r, http.StatusNotFound, "No video stream connected!")
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Video websocket upgrade failed - %v\n", err)
		return
	}
	defer conn.Close()

	for {
		data, err := s.video.Read()
		if err != nil {
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "video stream closed"))
			return
		}
		if err = conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			log.Printf("Video websocket write failed - %v\n", err)
			return
		}
	}
}

func respondEmpty(w http.ResponseWriter) {
	w.Header().Set("Content-type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)

	fmt.Fprint(w, "{}")
}

func respondError(w http.ResponseWriter, r *http.Request, httpStatus int, msg string) {
	resp := errorResponse{
		Error: msg,
	}

	w.Header().Set("Content-type", "application/json; charset=UTF-8")
	w.WriteHeader(httpStatus)

	json.NewEncoder(w).Encode(resp)
}
