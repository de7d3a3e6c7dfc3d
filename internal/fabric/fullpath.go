package fabric

import "fmt"

// PlaceholderNode stands in for the node id when a path name carries none.
const PlaceholderNode = "XXX"

// ReconstructFullPath rebuilds the topology-relative path of a pathep.
//
//	101-102-VPC-5-6-PG -> <pod>/protpaths-101-102/pathep-[101-102-VPC-5-6-PG]
//	101-eth1-7         -> <pod>/paths-101/pathep-[101-eth1-7]
//
// Any other name yields "" unless placeholder is set, in which case the node
// is rendered as paths-XXX.
func ReconstructFullPath(pod, path string, placeholder bool) string {
	if n1, n2, ok := matchVPCPathName(path); ok {
		return fmt.Sprintf("%s/protpaths-%s-%s/pathep-[%s]", pod, n1, n2, path)
	}
	if n, ok := matchSinglePathName(path); ok {
		return fmt.Sprintf("%s/paths-%s/pathep-[%s]", pod, n, path)
	}
	if placeholder {
		return fmt.Sprintf("%s/paths-%s/pathep-[%s]", pod, PlaceholderNode, path)
	}
	return ""
}

// IsPlaceholderPath reports whether ReconstructFullPath had to fall back to
// the placeholder node for this path name.
func IsPlaceholderPath(path string) bool {
	if _, _, ok := matchVPCPathName(path); ok {
		return false
	}
	_, ok := matchSinglePathName(path)
	return !ok
}
