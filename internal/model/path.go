package model

// Status classifies a declared endpoint path.
type Status string

const (
	StatusAllowed    Status = "allowed"
	StatusNotAllowed Status = "not_allowed"
)

// EndpointData is one fabric endpoint lookup result.
type EndpointData struct {
	VLAN  string   `json:"vlan"`  // e.g. "100"
	Paths []string `json:"paths"` // Deduplicated, first-seen order
}

// PathAttachment is one static path binding declared on an EPG.
type PathAttachment struct {
	VLAN     string `json:"vlan"`      // Taken from the EPG name, e.g. "100"
	EPG      string `json:"epg"`       // e.g. "VLAN100_APP"
	Path     string `json:"path"`      // pathep name, e.g. "101-102-VPC-5-6-PG"
	Pod      string `json:"pod"`       // e.g. "pod-1"
	FullPath string `json:"full_path"` // Empty if the path name could not be decoded
}

// ValidationResult is the verdict for a single endpoint path.
type ValidationResult struct {
	Path      string `json:"path"` // As found in the endpoint output, not normalized
	IsAllowed bool   `json:"is_allowed"`
	Status    Status `json:"status"`
}

// AnalysisResult contains everything produced from one pair of inputs.
type AnalysisResult struct {
	Endpoint    *EndpointData      `json:"endpoint"`
	Attachments []PathAttachment   `json:"attachments"`
	Results     []ValidationResult `json:"results"`
	EPG         string             `json:"epg"`
	FallbackPod string             `json:"fallback_pod"`
	CSV         string             `json:"csv"`
	Diagnostics []string           `json:"diagnostics,omitempty"`
}

// NotAllowed returns the results that failed validation.
func (r AnalysisResult) NotAllowed() []ValidationResult {
	var out []ValidationResult
	for _, res := range r.Results {
		if res.Status == StatusNotAllowed {
			out = append(out, res)
		}
	}
	return out
}
