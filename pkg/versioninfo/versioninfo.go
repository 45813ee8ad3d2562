// Package versioninfo holds build metadata. Both variables are set with
// -ldflags "-X github.com/brk3/streaks/pkg/versioninfo.Version=..." at
// release time.
package versioninfo

var (
	Version   = "dev"
	BuildDate = "unknown"
)

type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
}
