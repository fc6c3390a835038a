// Package presentation renders assertion subjects for failure messages.
//
// Representation implementations turn values into text; Standard is used
// unless a wrapper selects another with WithRepresentation, InHexadecimal or
// InBinary. Rendered values longer than MaxValueLength are truncated.
package presentation
