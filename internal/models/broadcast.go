package models

import "strings"

// Placeholder is rendered wherever upstream left a value empty
const Placeholder = "—"

// Broadcast pairs a raw network name with a streaming suggestion
type Broadcast struct {
	Network   string `json:"network"`
	Streaming string `json:"streaming"`
}

type streamingRule struct {
	needles    []string
	suggestion string
}

// Order matters: the first matching rule wins ("ESPN on ABC" maps to ESPN).
var streamingRules = []streamingRule{
	{needles: []string{"CBS"}, suggestion: "CBS (Paramount+)"},
	{needles: []string{"FOX"}, suggestion: "FOX (Fox Sports app)"},
	{needles: []string{"NBC"}, suggestion: "NBC (Peacock)"},
	{needles: []string{"ESPN"}, suggestion: "ESPN/ESPN2 (ESPN app)"},
	{needles: []string{"ABC"}, suggestion: "ABC (ESPN app)"},
	{needles: []string{"NFLN"}, suggestion: "NFL Network (NFL+)"},
	{needles: []string{"AMAZON", "PRIME"}, suggestion: "Prime Video"},
}

// StreamingFor maps a network name to a streaming suggestion.
// Unknown networks pass through unchanged; an empty name yields the placeholder.
func StreamingFor(network string) string {
	n := strings.ToUpper(network)
	for _, rule := range streamingRules {
		for _, needle := range rule.needles {
			if strings.Contains(n, needle) {
				return rule.suggestion
			}
		}
	}

	if network == "" {
		return Placeholder
	}
	return network
}

// PrettyBroadcasts dedupes networks by exact name, keeping first-seen order,
// and attaches a streaming suggestion to each
func PrettyBroadcasts(networks []string) []Broadcast {
	seen := make(map[string]struct{}, len(networks))
	out := make([]Broadcast, 0, len(networks))

	for _, n := range networks {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, Broadcast{Network: n, Streaming: StreamingFor(n)})
	}

	return out
}
