package fabric

import "vlanpath/internal/model"

// ValidateAllowances classifies every endpoint path. A path is allowed only
// if an attachment on the endpoint's VLAN declares the same (normalized) path.
// VLANs are compared as plain strings.
func ValidateAllowances(ep *model.EndpointData, attachments []model.PathAttachment) []model.ValidationResult {
	results := []model.ValidationResult{}
	if ep == nil {
		return results
	}

	allowed := make(map[string]bool)
	for _, a := range attachments {
		if a.VLAN == ep.VLAN {
			allowed[NormalizePath(a.Path)] = true
		}
	}

	for _, p := range ep.Paths {
		ok := allowed[NormalizePath(p)]
		status := model.StatusNotAllowed
		if ok {
			status = model.StatusAllowed
		}
		results = append(results, model.ValidationResult{
			Path:      p,
			IsAllowed: ok,
			Status:    status,
		})
	}

	return results
}

// AttachmentsForPath returns every attachment declaring the path, on any VLAN.
func AttachmentsForPath(path string, attachments []model.PathAttachment) []model.PathAttachment {
	key := NormalizePath(path)
	var out []model.PathAttachment
	for _, a := range attachments {
		if NormalizePath(a.Path) == key {
			out = append(out, a)
		}
	}
	return out
}
