package fabric

import (
	"strings"

	"vlanpath/internal/model"
)

// ParseEndpointOutput extracts the VLAN and the declared VPC paths from
// endpoint lookup text. It returns nil unless both a VLAN and at least one
// path were found.
//
// Lines are independent. When several lines carry a vlan-N token the last one
// wins. Paths are deduplicated and kept in the order first seen.
func ParseEndpointOutput(text string) *model.EndpointData {
	var vlan string
	var paths []string
	seen := make(map[string]bool)

	for line := range strings.Lines(text) {
		if v, ok := matchVLAN(line); ok {
			vlan = v
		}
		if p, ok := matchEndpointPath(line); ok && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	if vlan == "" || len(paths) == 0 {
		return nil
	}
	return &model.EndpointData{VLAN: vlan, Paths: paths}
}

// endpointGaps describes what ParseEndpointOutput could not find.
func endpointGaps(text string) []string {
	var hasVLAN, hasPath bool
	for line := range strings.Lines(text) {
		if _, ok := matchVLAN(line); ok {
			hasVLAN = true
		}
		if _, ok := matchEndpointPath(line); ok {
			hasPath = true
		}
	}
	var gaps []string
	if !hasVLAN {
		gaps = append(gaps, "vlan")
	}
	if !hasPath {
		gaps = append(gaps, "path")
	}
	return gaps
}
