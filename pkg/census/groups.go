package census

import (
	"cmp"
	"slices"
)

var fileExtTypes = map[string]string{
	// Image file extensions
	".jpg":  "Image",
	".jpeg": "Image",
	".png":  "Image",
	".gif":  "Image",
	".webp": "Image",
	".svg":  "Image",
	".bmp":  "Image",
	// Video file extensions
	".mov":  "Video",
	".mp4":  "Video",
	".webm": "Video",
	".mkv":  "Video",
	// Audio file extensions
	".mp3":  "Audio",
	".wav":  "Audio",
	".flac": "Audio",
	// Code file extensions
	".go":   "Code",
	".css":  "Code",
	".js":   "Code",
	".ts":   "Code",
	".py":   "Code",
	".cpp":  "Code",
	".c":    "Code",
	".h":    "Code",
	".java": "Code",
	".cs":   "Code",
	".rs":   "Code",
	".sh":   "Code",
	// Data file extensions
	".json": "Data",
	".xml":  "Data",
	".yaml": "Data",
	".yml":  "Data",
	".csv":  "Data",
	".dbf":  "Data",
	// Text file extensions
	".txt": "Text",
	".md":  "Text",
	".pdf": "Document",
	// Archive file extensions
	".zip": "Archive",
	".tar": "Archive",
	".gz":  "Archive",
	".tgz": "Archive",
	".7z":  "Archive",
	".rar": "Archive",
	// Log file extensions
	".log": "Log",
}

const OtherExtensionsGroupID = "Other"

var fileExtPlurals = map[string]string{
	"Data":  "Data",
	"Audio": "Audio",
	"Code":  "Code",
	"Text":  "Text",
}

// ExtensionsGroup collects the counts of extensions of the same kind.
type ExtensionsGroup struct {
	ID    string
	Title string
	Count int
	Exts  []ExtCount
}

// GroupOf returns the kind of an extension token, "Other" when unknown.
func GroupOf(ext string) string {
	if groupID := fileExtTypes[ext]; groupID != "" {
		return groupID
	}
	return OtherExtensionsGroupID
}

// Groups buckets counts by kind. Groups are sorted by title with "Other" last,
// extensions inside a group by descending count.
func Groups(counts ExtCounts) []*ExtensionsGroup {
	byID := make(map[string]*ExtensionsGroup)
	groups := make([]*ExtensionsGroup, 0)
	for _, ec := range counts.MostCommon(-1) {
		groupID := GroupOf(ec.Ext)
		group, ok := byID[groupID]
		if !ok {
			group = &ExtensionsGroup{
				ID:    groupID,
				Title: fileExtPlurals[groupID],
			}
			if group.Title == "" {
				group.Title = groupID + "s"
			}
			byID[groupID] = group
			groups = append(groups, group)
		}
		group.Count += ec.Count
		group.Exts = append(group.Exts, ec)
	}
	slices.SortFunc(groups, func(a, b *ExtensionsGroup) int {
		if a.ID == OtherExtensionsGroupID {
			return 1
		}
		if b.ID == OtherExtensionsGroupID {
			return -1
		}
		return cmp.Compare(a.Title, b.Title)
	})
	return groups
}
