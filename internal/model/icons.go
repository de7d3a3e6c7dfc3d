package model

// Version is the released version of vlanpath.
const Version = "0.3.1"

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconAllowed     = "✓" // Backed by an attachment on the same VLAN
	IconNotAllowed  = "✗" // No same-VLAN attachment
	IconOtherVLAN   = "≈" // Attached, but only on a different VLAN
	IconPlaceholder = "?" // Full path could not be decoded (paths-XXX)
)
