// Package config loads, validates, and watches the crewload YAML
// configuration: the standard work week, the two overhead allowances,
// the primary-member list, and the four saturation thresholds.
//
// Load fills unset fields from Default and rejects invalid
// configurations with a ConfigError instead of falling back silently —
// a malformed threshold set blocks the run rather than misclassifying
// every member. Watch provides fsnotify-based hot reload for callers
// that stay resident between runs.
package config
