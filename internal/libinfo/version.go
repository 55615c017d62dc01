/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package libinfo resolves the version of the library from the build info of the running binary.
package libinfo

import (
	"regexp"
	"runtime/debug"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const moduleName = "github.com/acronis/go-lrumap"

const defaultVersion = "v0.0.0"

// PrometheusLibVersionLabel is a name of the constant label with the library version.
const PrometheusLibVersionLabel = "lrumap_version"

// AddPrometheusLibVersionLabel returns a copy of labels with the library version label added.
func AddPrometheusLibVersionLabel(labels prometheus.Labels) prometheus.Labels {
	labelsCopy := make(prometheus.Labels, len(labels)+1)
	for k, v := range labels {
		labelsCopy[k] = v
	}
	labelsCopy[PrometheusLibVersionLabel] = GetLibVersion()
	return labelsCopy
}

var libVersion string
var libVersionOnce sync.Once

// GetLibVersion returns the version of the library or "v0.0.0" if it is unknown (e.g. in development builds).
func GetLibVersion() string {
	libVersionOnce.Do(func() {
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			libVersion = extractLibVersion(buildInfo, moduleName)
		}
		if libVersion == "" {
			libVersion = defaultVersion
		}
	})
	return libVersion
}

// extractLibVersion looks for the module among dependencies and then in the main module.
// The module may have a major version suffix ("/v2").
func extractLibVersion(buildInfo *debug.BuildInfo, modName string) string {
	if buildInfo == nil {
		return ""
	}
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(modName) + `(/v[0-9]+)?$`)
	for _, dep := range buildInfo.Deps {
		if re.MatchString(dep.Path) {
			return dep.Version
		}
	}
	if re.MatchString(buildInfo.Main.Path) && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	return ""
}
