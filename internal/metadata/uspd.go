package metadata

import (
	"regexp"
	"strconv"
)

var wellFormedUSPDRe = regexp.MustCompile(`^([A-ZА-ЯЁ]{2})\.ECO\.([0-9]{5})-([0-9]{2})$`)

// SortKey is the composite ordering key for registry entries. Well-formed
// identifiers decompose into locale and numeric parts; malformed ones keep
// the original string and sort after every well-formed key.
type SortKey struct {
	Primary    string
	Major      int
	Minor      int
	WellFormed bool
}

// ParseSortKey is total: every input yields a usable key.
func ParseSortKey(uspd string) SortKey {
	match := wellFormedUSPDRe.FindStringSubmatch(uspd)
	if match == nil {
		return SortKey{Primary: uspd}
	}
	major, _ := strconv.Atoi(match[2])
	minor, _ := strconv.Atoi(match[3])
	return SortKey{Primary: match[1], Major: major, Minor: minor, WellFormed: true}
}

// Less orders well-formed keys by (locale, major, minor) and places every
// malformed key after them, ordered by its original string.
func (k SortKey) Less(other SortKey) bool {
	if k.WellFormed != other.WellFormed {
		return k.WellFormed
	}
	if k.Primary != other.Primary {
		return k.Primary < other.Primary
	}
	if k.Major != other.Major {
		return k.Major < other.Major
	}
	return k.Minor < other.Minor
}
