// Package passpersist implements the net-snmp pass_persist line protocol:
// a registry of OID bindings, a request parser, and a single-threaded engine
// that answers GET and SET requests read from the controller.
//
// A session is a sequence of independent lines:
//
//	GET 1.3.6.1.4.1.9999.1.1.0
//	1.3.6.1.4.1.9999.1.1.0 = Cache Service
//	SET 1.3.6.1.4.1.9999.1.7.0 DEBUG
//	1.3.6.1.4.1.9999.1.7.0 = DEBUG
//
// Every reply is flushed before the next line is read.
package passpersist
