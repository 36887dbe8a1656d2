package session

import (
	"bytes"
	"net/http"
)

// bufferedWriter holds the handler response until the session is persisted,
// so a failed store write never follows a committed success response.
// Its header map starts as a copy of the underlying writer's headers, so the
// handler can override or remove headers set by outer middleware.
type bufferedWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedWriter(w http.ResponseWriter) *bufferedWriter {
	return &bufferedWriter{header: w.Header().Clone()}
}

func (b *bufferedWriter) Header() http.Header {
	return b.header
}

func (b *bufferedWriter) WriteHeader(statusCode int) {
	if b.status == 0 {
		b.status = statusCode
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// flushTo writes the buffered response to w. The buffered header map
// replaces the headers of w.
func (b *bufferedWriter) flushTo(w http.ResponseWriter) error {
	dst := w.Header()
	for key := range dst {
		if _, ok := b.header[key]; !ok {
			delete(dst, key)
		}
	}
	for key, values := range b.header {
		dst[key] = values
	}

	status := b.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if b.body.Len() == 0 {
		return nil
	}
	_, err := b.body.WriteTo(w)
	return err
}
