package version

import "strings"

// Version is overridden at build time with -ldflags.
var Version = "0.1.0-dev"

// Commit is the git commit the binary was built from.
var Commit = ""

var Environment string

func init() {
	if strings.Contains(Version, "dev") {
		Environment = "development"
	} else {
		Environment = "production"
	}
}
