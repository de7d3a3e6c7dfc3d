package fabric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchVLAN(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"vlan-100", "100", true},
		{"Encap: VLAN-2001 (learned)", "2001", true},
		{"encap vlan 100", "", false},
		{"vlan-", "", false},
	}

	for _, tt := range tests {
		got, ok := matchVLAN(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestMatchEndpointPath(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{"keyword form", "vlan-100, vpc 101-102-VPC-5-6-PG", "101-102-VPC-5-6-PG", true},
		{"keyword upper case", "VPC  201-202-VPC-1-2-PG", "201-202-VPC-1-2-PG", true},
		{"bare token", "  learned on 101-102-VPC-7-8-PG via leaf", "101-102-VPC-7-8-PG", true},
		{"keyword wins over bare", "vpc 1-2-VPC-3-4-PG 5-6-VPC-7-8-PG", "1-2-VPC-3-4-PG", true},
		{"single port is not a vpc path", "eth1/7", "", false},
		{"missing PG suffix", "101-102-VPC-5-6", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchEndpointPath(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchAttachment(t *testing.T) {
	tests := []struct {
		name string
		line string
		want dnCapture
		ok   bool
	}{
		{
			name: "protpaths",
			line: "dn: uni/tn-X/ap-Y/epg-VLAN100_APP/rspathAtt-[topology/pod-1/protpaths-101-102/pathep-[101-102-VPC-5-6-PG]]",
			want: dnCapture{epg: "VLAN100_APP", pod: "pod-1", path: "101-102-VPC-5-6-PG"},
			ok:   true,
		},
		{
			name: "single path",
			line: "dn: uni/tn-X/ap-Y/epg-VLAN200/rspathAtt-[topology/pod-2/paths-103/pathep-[eth1/7]]",
			want: dnCapture{epg: "VLAN200", pod: "pod-2", path: "eth1/7"},
			ok:   true,
		},
		{
			name: "not an rspathAtt",
			line: "dn: uni/tn-X/ap-Y/epg-VLAN100_APP",
			ok:   false,
		},
		{
			name: "missing dn prefix",
			line: "uni/tn-X/ap-Y/epg-VLAN100/rspathAtt-[topology/pod-1/paths-101/pathep-[eth1/1]]",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchAttachment(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchEPGVLAN(t *testing.T) {
	v, ok := matchEPGVLAN("VLAN100_APP")
	assert.True(t, ok)
	assert.Equal(t, "100", v)

	v, ok = matchEPGVLAN("app_vlan42")
	assert.True(t, ok)
	assert.Equal(t, "42", v)

	_, ok = matchEPGVLAN("WEB_EPG")
	assert.False(t, ok)
}
