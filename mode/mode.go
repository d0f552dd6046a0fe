// Package mode names the runtime mode that selects provider strategies at
// construction time. In production a provider failure surfaces to the
// caller; in development and test it degrades to a deterministic fallback
// so the rest of the pipeline keeps functioning offline.
package mode

type Mode string

const (
	Production  Mode = "production"
	Development Mode = "development"
	Test        Mode = "test"
)

func Parse(s string) Mode {
	switch Mode(s) {
	case Production, Development, Test:
		return Mode(s)
	default:
		return Development
	}
}
