// Package rpc implements the runtime call layer generated stubs bind
// against.
//
// A Session performs one blocking request/response exchange: the stub
// streams its encoded arguments behind the method name, then suspends
// until the matching reply is decoded. Client is the msgpack-rpc
// implementation of Session:
//
//	request       [0, id, method, [args...]]
//	response      [1, id, error, result]
//	notification  [2, method, [args...]]   (skipped while waiting)
//
// Client models at most one outstanding call; batching or pipelining
// is the caller's concern. A non-nil error slot in the reply surfaces
// as a call_failed error carrying the decoded wire error value.
package rpc
