package paths

import (
	"flag"
)

// SetupFilePathFlag registers a string flag holding the location of a data
// archive or database. Its default is wherever Find discovers fileName, or
// empty when the file is nowhere to be found; callers then fall back to
// something else, such as the demo data.
func SetupFilePathFlag(fileName, flagName string, flagPtr *string) {
	flag.StringVar(flagPtr, flagName, Find(fileName), "Location of "+fileName+": a zip file, a data directory or an http URL")
}
