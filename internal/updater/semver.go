package updater

import (
	"fmt"
	"strconv"
	"strings"
)

// Semver is a parsed release version. Release tags carry only the numeric
// triple, so pre-release and build suffixes are not modeled.
type Semver struct {
	Major int
	Minor int
	Patch int
}

// ParseSemver parses "major.minor.patch", with or without a leading "v".
func ParseSemver(s string) (Semver, error) {
	parts := strings.SplitN(strings.TrimPrefix(s, "v"), ".", 3)
	if len(parts) != 3 {
		return Semver{}, fmt.Errorf("malformed version %q", s)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Semver{}, fmt.Errorf("malformed version %q: %w", s, err)
		}
		nums[i] = n
	}
	return Semver{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// LessThan reports whether v precedes other in release order.
func (v Semver) LessThan(other Semver) bool {
	switch {
	case v.Major != other.Major:
		return v.Major < other.Major
	case v.Minor != other.Minor:
		return v.Minor < other.Minor
	default:
		return v.Patch < other.Patch
	}
}
