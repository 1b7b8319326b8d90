// Package paths locates datafiles and reads named resources out of packed
// data archives.
package paths

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
)

// SearchDirs lists the directories Find looks in, in order. Relative entries
// are resolved against the working directory.
var SearchDirs = []string{
	".",
	"datafiles",
	"../datafiles",
}

func possiblePaths(fileName string) []string {
	var out []string
	for _, dir := range SearchDirs {
		out = append(out, filepath.Join(dir, fileName))
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		out = append(out, filepath.Join(gopath, "src/badc0de.net/pkg/go-mana/datafiles", fileName))
	}
	if srcdir := os.Getenv("TEST_SRCDIR"); srcdir != "" {
		out = append(out, filepath.Join(srcdir, "go_mana/datafiles", fileName))
	}
	out = append(out, os.Args[0]+".runfiles/go_mana/datafiles/"+fileName)
	return out
}

// Find locates the passed datafile shortname and returns an absolute or
// relative path to find the datafile at.
//
// For example, for "tmwa-data.zip" it may return
// "mybinary.runfiles/go_mana/datafiles/tmwa-data.zip".
//
// If nothing is found, an empty string is returned.
func Find(fileName string) string {
	for _, path := range possiblePaths(fileName) {
		if _, err := os.Stat(path); err == nil {
			glog.Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}
