// Package metrics reduces a trajectory of rocket states (altitude,
// velocity, mass) to scalar figures. Each metric is fed one sample at a time
// through Observe and implements dynamo.Metric.
package metrics
