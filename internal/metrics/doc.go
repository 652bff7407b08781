// Package metrics records generation-run metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics can be
// switched on without nil checks:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	reg := registry.New(registry.WithRecorder(rec))
//	...
//	_ = metrics.WriteTextfile(rec.Registry(), "how2use.prom")
//
// The same registry can be served over HTTP with HTTPHandler.
package metrics
