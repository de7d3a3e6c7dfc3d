package fabric

import (
	"strings"

	"vlanpath/internal/model"
)

// ParseAttachmentOutput extracts static path attachments from a directory
// query dump (one "dn: uni/..." per line). Lines that do not describe an
// rspathAtt, or whose EPG name carries no VLAN number, are skipped.
func ParseAttachmentOutput(text string) []model.PathAttachment {
	attachments := []model.PathAttachment{}

	for line := range strings.Lines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, ok := matchAttachment(line)
		if !ok {
			continue
		}
		vlan, _ := matchEPGVLAN(c.epg)
		if vlan == "" || c.path == "" {
			continue
		}
		attachments = append(attachments, model.PathAttachment{
			VLAN:     vlan,
			EPG:      c.epg,
			Path:     c.path,
			Pod:      c.pod,
			FullPath: ReconstructFullPath(c.pod, c.path, false),
		})
	}

	return attachments
}
