package internal

import (
	"log"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
)

const envPrefix = "CONVPOOL_"

var sensitiveRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)

func Version() string {
	return versioninfo.Short()
}

func ShowVersion() {
	log.Printf("Version: %s\n", Version())
}

// EnvironmentVars logs every CONVPOOL_* variable, masking anything that looks
// like a credential.
func EnvironmentVars() {
	log.Println("Environment variables")
	for _, line := range environment(os.Environ()) {
		log.Printf("  %s\n", line)
	}
}

func environment(environ []string) []string {
	var lines []string
	for _, entry := range environ {
		kv := strings.SplitN(entry, "=", 2)
		if !strings.HasPrefix(kv[0], envPrefix) {
			continue
		}
		value := ""
		if len(kv) == 2 {
			value = kv[1]
		}
		if sensitiveRegex.MatchString(kv[0]) {
			value = "********"
		}
		lines = append(lines, kv[0]+": "+value)
	}
	sort.Strings(lines)
	return lines
}
