package app

import (
	"fmt"

	hashiVersion "github.com/hashicorp/go-version"
)

// VersionTransition describes how an app's version moved since the previous sync, e.g. "1.0.0 -> 1.2.0 (upgrade)".
// It returns the current version alone when there is nothing to compare.
func VersionTransition(previous, current string) string {
	if previous == "" || previous == current {
		return current
	}

	label := compareVersions(previous, current)
	if label == "" {
		return fmt.Sprintf("%s -> %s", previous, current)
	}
	return fmt.Sprintf("%s -> %s (%s)", previous, current, label)
}

func compareVersions(previous, current string) string {
	prev, err := hashiVersion.NewVersion(previous)
	if err != nil {
		return ""
	}
	curr, err := hashiVersion.NewVersion(current)
	if err != nil {
		return ""
	}

	switch {
	case curr.GreaterThan(prev):
		return "upgrade"
	case curr.LessThan(prev):
		return "downgrade"
	default:
		return ""
	}
}
