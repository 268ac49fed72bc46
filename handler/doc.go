// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a request struct populated by binder functions and
// returns a Response. Errors from binding, from the handler (via Error) and
// from rendering all reach a single ErrorHandler, which by default answers
// with a JSON envelope:
//
//	{"error":{"code":"validation_error","message":"validation failed","details":{"ssid":["..."]}}}
//
//	r.Post("/generate", handler.Wrap(svc.generate,
//	    handler.WithBinders[generateRequest](binder.JSON(0)),
//	    handler.WithErrorHandler[generateRequest](errHandler),
//	))
//
// Domain packages register ErrorMapper functions to give their sentinel
// errors a status code without this package importing them.
package handler
