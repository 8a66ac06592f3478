package passpersist

import "strings"

// RequestKind is the closed set of operations a line can carry
type RequestKind int

const (
	RequestInvalid RequestKind = iota
	RequestGet
	RequestSet
	RequestPing
)

// String returns the protocol verb
func (k RequestKind) String() string {
	switch k {
	case RequestGet:
		return "GET"
	case RequestSet:
		return "SET"
	case RequestPing:
		return "PING"
	}
	return "INVALID"
}

// Request is one decoded input line
type Request struct {
	Kind     RequestKind
	OID      string
	Value    string
	HasValue bool
	Tokens   []string
}

// ParseRequest decodes a line. It returns false for blank lines, which get
// no reply at all.
//
// A lone PING is the controller's keep-alive. Any other line with fewer than
// two tokens, or whose verb is not exactly GET or SET, is RequestInvalid.
// SET takes only the first token after the OID as its value.
func ParseRequest(line string) (Request, bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Request{}, false
	}

	req := Request{Kind: RequestInvalid, Tokens: tokens}
	if len(tokens) == 1 {
		if tokens[0] == "PING" {
			req.Kind = RequestPing
		}
		return req, true
	}

	req.OID = tokens[1]
	switch tokens[0] {
	case "GET":
		req.Kind = RequestGet
	case "SET":
		req.Kind = RequestSet
		if len(tokens) > 2 {
			req.Value = tokens[2]
			req.HasValue = true
		}
	}
	return req, true
}
