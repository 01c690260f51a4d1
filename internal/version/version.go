// ABOUTME: Version constants for the shtooka tools
// ABOUTME: Reported by the version command and in debug logs
package version

const (
	// Version is the release of this build
	Version = "0.3.0"

	// Product is the name shown to users
	Product = "Shtooka Player"

	// Manufacturer identifies who ships the tools
	Manufacturer = "shtooka-go"
)

// String returns the product and version on one line
func String() string {
	return Product + " " + Version
}
