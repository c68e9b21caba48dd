// Package metrics records glossary build metrics.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// check for nil. PrometheusRecorder registers its collectors on a registry that
// can be written out as a node-exporter textfile after a build.
package metrics
