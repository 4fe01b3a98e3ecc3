package rest

import "net/http"

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
}

type handlers struct{}

func NewHandlers() Handlers {
	return &handlers{}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
