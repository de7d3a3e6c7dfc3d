package fabric

import (
	"fmt"
	"sort"
	"strings"

	"vlanpath/internal/model"
)

// GenerateReport renders a plain-text diagnostic report of an analysis.
// Verbose adds the full attachment inventory grouped by VLAN.
func GenerateReport(result model.AnalysisResult, verbose bool) string {
	var sb strings.Builder

	notAllowed := result.NotAllowed()
	vlan := ""
	if result.Endpoint != nil {
		vlan = result.Endpoint.VLAN
	}

	sb.WriteString("VLAN PATH VALIDATION REPORT\n")
	sb.WriteString("===========================\n\n")
	fmt.Fprintf(&sb, "VLAN:          %s\n", vlan)
	fmt.Fprintf(&sb, "EPG:           %s\n", result.EPG)
	fmt.Fprintf(&sb, "Paths:         %d\n", len(result.Results))
	fmt.Fprintf(&sb, "Attachments:   %d\n", len(result.Attachments))
	fmt.Fprintf(&sb, "Not allowed:   %d\n\n", len(notAllowed))

	sb.WriteString("Paths\n-----\n")
	for i, res := range result.Results {
		icon := model.IconAllowed
		if !res.IsAllowed {
			icon = model.IconNotAllowed
		}
		fmt.Fprintf(&sb, "%2d. %s %-28s %s\n", i+1, icon, res.Path, res.Status)
		if !res.IsAllowed {
			pod := PodForPath(res.Path, result.Attachments, result.FallbackPod)
			fmt.Fprintf(&sb, "       -> %s\n", ReconstructFullPath(pod, res.Path, true))
		}
	}

	if len(result.Diagnostics) > 0 {
		sb.WriteString("\nDiagnostics\n-----------\n")
		for _, d := range result.Diagnostics {
			fmt.Fprintf(&sb, "  - %s\n", d)
		}
	}

	if verbose {
		sb.WriteString("\nAttachments by VLAN\n-------------------\n")
		byVLAN := make(map[string][]model.PathAttachment)
		for _, a := range result.Attachments {
			byVLAN[a.VLAN] = append(byVLAN[a.VLAN], a)
		}
		vlans := make([]string, 0, len(byVLAN))
		for v := range byVLAN {
			vlans = append(vlans, v)
		}
		sort.Strings(vlans)
		for _, v := range vlans {
			fmt.Fprintf(&sb, "VLAN %s\n", v)
			for _, a := range byVLAN[v] {
				full := a.FullPath
				if full == "" {
					full = "(undecodable path name)"
				}
				fmt.Fprintf(&sb, "    %-20s %s\n", a.EPG, full)
			}
		}
	}

	return sb.String()
}
