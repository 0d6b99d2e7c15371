package static

import (
	"io"
	"net/http"
)

// Header is a single response header.
type Header struct {
	Key, Value string
}

// Injected lists the headers added to every response, in the order they
// are set. net/http writes header fields sorted by key, so this is not the
// order on the wire.
var Injected = []Header{
	{"Access-Control-Allow-Origin", "*"},
	{"Access-Control-Allow-Methods", "GET"},
	{"Cache-Control", "no-store, no-cache, must-revalidate"},
}

// WithHeaders decorates next so that every response carries the Injected
// headers, whatever status next produces.
//
// The headers are set when the status line is about to be written rather
// than up front: http.FileServer drops Cache-Control on its error path.
func WithHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hw := &headerWriter{ResponseWriter: w}
		next.ServeHTTP(hw, r)
		// Nothing written yet means net/http sends the header after we return.
		hw.inject()
	})
}

type headerWriter struct {
	http.ResponseWriter
	done bool
}

func (w *headerWriter) inject() {
	if w.done {
		return
	}
	w.done = true
	h := w.ResponseWriter.Header()
	for _, kv := range Injected {
		h.Set(kv.Key, kv.Value)
	}
}

func (w *headerWriter) WriteHeader(code int) {
	if code >= 200 || code == http.StatusSwitchingProtocols {
		w.inject()
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *headerWriter) Write(b []byte) (int, error) {
	w.inject()
	return w.ResponseWriter.Write(b)
}

// ReadFrom keeps the sendfile path that http.FileServer uses for file bodies.
func (w *headerWriter) ReadFrom(src io.Reader) (int64, error) {
	w.inject()
	if rf, ok := w.ResponseWriter.(io.ReaderFrom); ok {
		return rf.ReadFrom(src)
	}
	return io.Copy(w.ResponseWriter, src)
}

func (w *headerWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
