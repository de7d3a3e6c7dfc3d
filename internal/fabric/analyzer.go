package fabric

import (
	"errors"
	"fmt"
	"strings"

	"vlanpath/internal/model"
)

// ErrNoEndpointData is returned when the endpoint text lacks a VLAN or a path,
// in which case nothing can be validated.
var ErrNoEndpointData = errors.New("no endpoint data")

// Analyzer runs the full parse, validate and render pipeline.
type Analyzer struct {
	epg         string
	fallbackPod string
}

// NewAnalyzer creates an Analyzer. An empty epg is resolved from the
// attachments; an empty fallbackPod means DefaultFallbackPod.
func NewAnalyzer(epg, fallbackPod string) *Analyzer {
	if fallbackPod == "" {
		fallbackPod = DefaultFallbackPod
	}
	return &Analyzer{epg: epg, fallbackPod: fallbackPod}
}

// Analyze parses both inputs and validates the endpoint paths against the
// attachments.
func (a *Analyzer) Analyze(endpointText, attachmentText string) (model.AnalysisResult, error) {
	ep := ParseEndpointOutput(endpointText)
	if ep == nil {
		return model.AnalysisResult{}, fmt.Errorf("%w: missing %s", ErrNoEndpointData, strings.Join(endpointGaps(endpointText), " and "))
	}

	attachments := ParseAttachmentOutput(attachmentText)
	results := ValidateAllowances(ep, attachments)
	epg := a.resolveEPG(ep.VLAN, attachments)

	return model.AnalysisResult{
		Endpoint:    ep,
		Attachments: attachments,
		Results:     results,
		EPG:         epg,
		FallbackPod: a.fallbackPod,
		CSV:         GenerateCSVWithFallbackPod(ep.VLAN, epg, results, ep, attachments, a.fallbackPod),
		Diagnostics: a.diagnose(ep, attachments, results),
	}, nil
}

// resolveEPG picks the EPG used in the CSV: explicit, else the first
// attachment on the endpoint VLAN, else VLAN<n>.
func (a *Analyzer) resolveEPG(vlan string, attachments []model.PathAttachment) string {
	if a.epg != "" {
		return a.epg
	}
	for _, att := range attachments {
		if att.VLAN == vlan {
			return att.EPG
		}
	}
	return "VLAN" + vlan
}

func (a *Analyzer) diagnose(ep *model.EndpointData, attachments []model.PathAttachment, results []model.ValidationResult) []string {
	var diags []string

	if len(attachments) == 0 {
		diags = append(diags, "No path attachments found in the directory query output.")
	} else {
		onVLAN := 0
		for _, att := range attachments {
			if att.VLAN == ep.VLAN {
				onVLAN++
			}
		}
		if onVLAN == 0 {
			diags = append(diags, fmt.Sprintf("None of the %d attachments is on VLAN %s.", len(attachments), ep.VLAN))
		}
	}

	for _, res := range results {
		if res.Status != model.StatusNotAllowed {
			continue
		}
		others := AttachmentsForPath(res.Path, attachments)
		if len(others) > 0 {
			diags = append(diags, fmt.Sprintf("%s is attached on VLAN %s but not on VLAN %s.", res.Path, others[0].VLAN, ep.VLAN))
		} else {
			diags = append(diags, fmt.Sprintf("%s has no attachment; using fallback pod %s.", res.Path, a.fallbackPod))
		}
		if IsPlaceholderPath(res.Path) {
			diags = append(diags, fmt.Sprintf("%s does not start with a node id; rendered as paths-%s.", res.Path, PlaceholderNode))
		}
	}

	return diags
}
