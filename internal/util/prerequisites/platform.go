package prerequisites

import (
	"runtime"
	"strings"

	"github.com/joho/godotenv"
)

const osReleasePath = "/etc/os-release"

// linuxFamilies maps os-release IDs to the family used as hint key.
var linuxFamilies = map[string]string{
	"debian":      "debian",
	"ubuntu":      "debian",
	"linuxmint":   "debian",
	"pop":         "debian",
	"fedora":      "fedora",
	"rhel":        "fedora",
	"centos":      "fedora",
	"rocky":       "fedora",
	"almalinux":   "fedora",
	"arch":        "arch",
	"manjaro":     "arch",
	"endeavouros": "arch",
	"alpine":      "alpine",
}

// DetectPlatform returns the platform identifier of the running host:
// runtime.GOOS, refined to "linux/<family>" when /etc/os-release names a
// known distribution.
func DetectPlatform() string {
	return detectPlatform(runtime.GOOS, osReleasePath)
}

func detectPlatform(goos, releaseFile string) string {
	if goos != "linux" {
		return goos
	}

	release, err := godotenv.Read(releaseFile)
	if err != nil {
		return goos
	}

	ids := append([]string{release["ID"]}, strings.Fields(release["ID_LIKE"])...)
	for _, id := range ids {
		if family, ok := linuxFamilies[strings.ToLower(id)]; ok {
			return goos + "/" + family
		}
	}
	return goos
}

func osOf(platform string) string {
	goos, _, _ := strings.Cut(platform, "/")
	return goos
}
