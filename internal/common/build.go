package common

import "runtime/debug"

// GetModuleBuildInfo returns the module version and git commit baked into
// the binary, when available.
func GetModuleBuildInfo() (string, string, bool) {
	if info, ok := debug.ReadBuildInfo(); ok {
		version := info.Main.Version
		var gitCommit string

		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				gitCommit = setting.Value
				break
			}
		}

		return version, gitCommit, true
	}
	return "", "", false
}
