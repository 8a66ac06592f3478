package passpersist

import (
	"bufio"
	"io"

	constants "snmpagent/config"
)

// ResponseWriter writes one reply per line and flushes immediately.
// The controller blocks on each reply, so an unflushed line stalls it.
type ResponseWriter struct {
	w *bufio.Writer
}

// NewResponseWriter wraps w
func NewResponseWriter(w io.Writer) *ResponseWriter {
	return &ResponseWriter{w: bufio.NewWriter(w)}
}

// WriteLine writes line followed by a newline and flushes
func (rw *ResponseWriter) WriteLine(line string) error {
	if _, err := rw.w.WriteString(line); err != nil {
		return err
	}
	if err := rw.w.WriteByte('\n'); err != nil {
		return err
	}
	return rw.w.Flush()
}

func formatReply(oid, value string) string {
	return oid + " = " + value
}

func formatFault(message string) string {
	return constants.REPLY_ERROR_PREFIX + message
}
