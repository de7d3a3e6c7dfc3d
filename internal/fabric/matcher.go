package fabric

import "regexp"

var (
	// vlan-100, VLAN-100
	reVLAN = regexp.MustCompile(`(?i)vlan-(\d+)`)

	// vpc 101-102-VPC-5-6-PG
	reKeywordPath = regexp.MustCompile(`(?i:vpc)\s+([\d-]+-VPC-[\d-]+-PG)`)

	// 101-102-VPC-5-6-PG anywhere in the line
	reBarePath = regexp.MustCompile(`\b(\d+-\d+-VPC-\d+-\d+-PG)\b`)

	// dn: uni/tn-T/ap-A/epg-E/rspathAtt-[topology/pod-1/protpaths-101-102/pathep-[NAME]]
	reVPCAttachment = regexp.MustCompile(
		`dn:\s*uni/tn-[^/]+/ap-[^/]+/epg-([^/]+)/rspathAtt-\[topology/([^/]+)/protpaths-\d+-\d+/pathep-\[([^\]]+)\]\]`)

	// dn: uni/tn-T/ap-A/epg-E/rspathAtt-[topology/pod-1/paths-101/pathep-[NAME]]
	reSingleAttachment = regexp.MustCompile(
		`dn:\s*uni/tn-[^/]+/ap-[^/]+/epg-([^/]+)/rspathAtt-\[topology/([^/]+)/paths-\d+/pathep-\[([^\]]+)\]\]`)

	reEPGVLAN = regexp.MustCompile(`(?i)VLAN(\d+)`)

	reVPCPathName    = regexp.MustCompile(`^(\d+)-(\d+)-VPC`)
	reSinglePathName = regexp.MustCompile(`^(\d+)[-/]`)
)

// dnCapture holds the fields kept from an rspathAtt distinguished name.
type dnCapture struct {
	epg  string
	pod  string
	path string
}

func matchVLAN(line string) (string, bool) {
	m := reVLAN.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func matchKeywordPath(line string) (string, bool) {
	m := reKeywordPath.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func matchBarePath(line string) (string, bool) {
	m := reBarePath.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// matchEndpointPath tries the keyword form first and only then the bare token.
func matchEndpointPath(line string) (string, bool) {
	if p, ok := matchKeywordPath(line); ok {
		return p, true
	}
	return matchBarePath(line)
}

func matchDN(re *regexp.Regexp, line string) (dnCapture, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return dnCapture{}, false
	}
	return dnCapture{epg: m[1], pod: m[2], path: m[3]}, true
}

func matchVPCAttachment(line string) (dnCapture, bool) {
	return matchDN(reVPCAttachment, line)
}

func matchSingleAttachment(line string) (dnCapture, bool) {
	return matchDN(reSingleAttachment, line)
}

// matchAttachment tries the protpaths form first, then the single-node form.
func matchAttachment(line string) (dnCapture, bool) {
	if c, ok := matchVPCAttachment(line); ok {
		return c, true
	}
	return matchSingleAttachment(line)
}

func matchEPGVLAN(epg string) (string, bool) {
	m := reEPGVLAN.FindStringSubmatch(epg)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func matchVPCPathName(path string) (node1, node2 string, ok bool) {
	m := reVPCPathName.FindStringSubmatch(path)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func matchSinglePathName(path string) (string, bool) {
	m := reSinglePathName.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	return m[1], true
}
