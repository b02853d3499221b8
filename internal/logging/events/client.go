package events

import "github.com/atomicstack/listbot/internal/logging"

type ClientTracer struct{}

var Client = ClientTracer{}

func (ClientTracer) Request(method, path string) {
	logging.Trace("client.request", map[string]interface{}{"method": method, "path": path})
}

func (ClientTracer) Response(method, path string, status int) {
	logging.Trace("client.response", map[string]interface{}{"method": method, "path": path, "status": status})
}

func (ClientTracer) Failure(method, path string, status int) {
	logging.Trace("client.failure", map[string]interface{}{"method": method, "path": path, "status": status})
}
