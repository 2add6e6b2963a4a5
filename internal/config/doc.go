// Package config loads the metric configuration used by the disorder CLI.
//
// Files are JSON or YAML with the same flat schema. Every field is
// optional; the Get* accessors supply defaults and Build turns a validated
// config into a dissimilarity.Metric.
package config
