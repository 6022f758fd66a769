package version

import (
	"fmt"
	"runtime"
)

const valueNotProvided = "[not provided]"

// all variables here are provided as build-time arguments, with clear default values
var version = valueNotProvided
var gitCommit = valueNotProvided
var gitTreeState = valueNotProvided
var buildDate = valueNotProvided
var platform = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)

// Version defines the application version details (generally from build information)
type Version struct {
	Version      string `json:"version"`
	GitCommit    string `json:"gitCommit"`
	GitTreeState string `json:"gitTreeState"`
	BuildDate    string `json:"buildDate"`
	GoVersion    string `json:"goVersion"`
	Compiler     string `json:"compiler"`
	Platform     string `json:"platform"`
}

// FromBuild provides all version details
func FromBuild() Version {
	return Version{
		Version:      version,
		GitCommit:    gitCommit,
		GitTreeState: gitTreeState,
		BuildDate:    buildDate,
		GoVersion:    runtime.Version(),
		Compiler:     runtime.Compiler,
		Platform:     platform,
	}
}

// IsRelease reports whether a version was stamped in at build time.
func (v Version) IsRelease() bool {
	return v.Version != valueNotProvided
}

// Fields lists the version details as ordered name/value pairs for logging.
func (v Version) Fields() [][2]string {
	return [][2]string{
		{"buildDate", v.BuildDate},
		{"compiler", v.Compiler},
		{"gitCommit", v.GitCommit},
		{"gitTreeState", v.GitTreeState},
		{"goVersion", v.GoVersion},
		{"platform", v.Platform},
		{"version", v.Version},
	}
}
