package fabric

import (
	"strings"

	"vlanpath/internal/model"
)

const (
	// DefaultFallbackPod is used when no attachment names the pod of a path.
	DefaultFallbackPod = "pod-2"

	CSVHeader = "VLAN,EPG,PATH"
)

// GenerateCSV renders the not-allowed results as VLAN,EPG,PATH rows under a
// header line. Fields are written as-is, without quoting.
func GenerateCSV(vlan, epg string, results []model.ValidationResult, ep *model.EndpointData, attachments []model.PathAttachment) string {
	return GenerateCSVWithFallbackPod(vlan, epg, results, ep, attachments, DefaultFallbackPod)
}

// GenerateCSVWithFallbackPod is GenerateCSV with a caller-chosen fallback pod.
func GenerateCSVWithFallbackPod(vlan, epg string, results []model.ValidationResult, ep *model.EndpointData, attachments []model.PathAttachment, fallbackPod string) string {
	if vlan == "" && ep != nil {
		vlan = ep.VLAN
	}
	if fallbackPod == "" {
		fallbackPod = DefaultFallbackPod
	}

	var sb strings.Builder
	sb.WriteString(CSVHeader)
	for _, res := range results {
		if res.Status != model.StatusNotAllowed {
			continue
		}
		pod := PodForPath(res.Path, attachments, fallbackPod)
		sb.WriteByte('\n')
		sb.WriteString(vlan)
		sb.WriteByte(',')
		sb.WriteString(epg)
		sb.WriteByte(',')
		sb.WriteString(ReconstructFullPath(pod, res.Path, true))
	}
	return sb.String()
}

// PodForPath returns the pod of the first attachment (any VLAN) declaring
// the path, or fallback when there is none.
func PodForPath(path string, attachments []model.PathAttachment, fallback string) string {
	key := NormalizePath(path)
	for _, a := range attachments {
		if NormalizePath(a.Path) == key {
			return a.Pod
		}
	}
	return fallback
}
