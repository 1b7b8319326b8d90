package full

import (
	"context"
	"flag"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-mana/datafiles"
	"badc0de.net/pkg/go-mana/paths"
	"badc0de.net/pkg/go-mana/things"
)

var (
	dataPath string
	files    = DefaultFiles
)

type PathFlag string

const (
	FlagDataPath       = PathFlag("data_path")
	FlagMonstersXML    = PathFlag("monsters_xml")
	FlagNPCsXML        = PathFlag("npcs_xml")
	FlagItemsXML       = PathFlag("items_xml")
	FlagHairColorsXML  = PathFlag("hair_xml")
	DefaultArchiveName = "tmwa-data.zip"

	// DemoArchiveName selects the small data set built into the binaries.
	DemoArchiveName = "demo"
)

// SetupFlags registers flags to define the data archive (--data_path: a zip
// file, a directory, an http URL or "demo") and the names of the databases in
// it.
//
// These are then used by FromFlags.
func SetupFlags() {
	paths.SetupFilePathFlag(DefaultArchiveName, string(FlagDataPath), &dataPath)
	flag.StringVar(&files.Monsters, string(FlagMonstersXML), files.Monsters, "Name of the monster database in the data archive")
	flag.StringVar(&files.NPCs, string(FlagNPCsXML), files.NPCs, "Name of the NPC database in the data archive")
	flag.StringVar(&files.Items, string(FlagItemsXML), files.Items, "Name of the item database in the data archive")
	flag.StringVar(&files.HairColors, string(FlagHairColorsXML), files.HairColors, "Name of the hair color database in the data archive")
}

// FromFlags opens the archive named by --data_path and reads the databases
// out of it. The flags need to be registered and parsed by the time this
// function is invoked.
func FromFlags(ctx context.Context) (paths.Archive, *things.Things, error) {
	var a paths.Archive
	switch dataPath {
	case "":
		glog.Warningf("--%s not set and %s not found; using the demo data", FlagDataPath, DefaultArchiveName)
		fallthrough
	case DemoArchiveName:
		a = &paths.FSArchive{FS: datafiles.Demo()}
	default:
		var err error
		if a, err = paths.OpenArchive(dataPath); err != nil {
			return nil, nil, err
		}
	}
	t, err := FromArchive(ctx, a, files)
	if err != nil {
		return nil, nil, err
	}
	return a, t, nil
}

// PathFlagValue returns the value for the passed flag.
func PathFlagValue(key PathFlag) string {
	switch key {
	case FlagDataPath:
		return dataPath
	case FlagMonstersXML:
		return files.Monsters
	case FlagNPCsXML:
		return files.NPCs
	case FlagItemsXML:
		return files.Items
	case FlagHairColorsXML:
		return files.HairColors
	default:
		return ""
	}
}
