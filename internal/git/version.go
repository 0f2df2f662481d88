package git

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// minGitVersion is the oldest git that has every subcommand the service runs
// ("git switch" arrived in 2.23).
var minGitVersion = gitVersion{2, 23, 0}

type gitVersion struct {
	major, minor, patch int
}

func (v gitVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

func (v gitVersion) less(other gitVersion) bool {
	if v.major != other.major {
		return v.major < other.major
	}
	if v.minor != other.minor {
		return v.minor < other.minor
	}
	return v.patch < other.patch
}

var gitVersionRE = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// parseGitVersion accepts "git --version" output, including vendor suffixes
// such as "2.39.3 (Apple Git-146)" or "2.39.3.windows.1".
func parseGitVersion(out string) (gitVersion, bool) {
	m := gitVersionRE.FindStringSubmatch(out)
	if m == nil {
		return gitVersion{}, false
	}
	var v gitVersion
	v.major, _ = strconv.Atoi(m[1])
	v.minor, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		v.patch, _ = strconv.Atoi(m[3])
	}
	return v, true
}

func checkGitVersion(out string) error {
	got, ok := parseGitVersion(out)
	if !ok {
		return fmt.Errorf("unable to parse git version output: %q", strings.TrimSpace(out))
	}
	if got.less(minGitVersion) {
		return fmt.Errorf("git %s is too old; gitk-refs requires git >= %s", got, minGitVersion)
	}
	return nil
}

var gitVersionProbe struct {
	once sync.Once
	out  string
	err  error
}

// GitVersion returns the output of "git --version", probed once.
func GitVersion() (string, error) {
	gitVersionProbe.once.Do(func() {
		raw, err := exec.Command(gitExecutable, "--version").CombinedOutput()
		out := strings.TrimSpace(string(raw))
		gitVersionProbe.out = out
		switch {
		case err != nil && out != "":
			gitVersionProbe.err = fmt.Errorf("git --version: %w: %s", err, out)
		case err != nil:
			gitVersionProbe.err = fmt.Errorf("git --version: %w", err)
		default:
			gitVersionProbe.err = checkGitVersion(out)
		}
	})
	return gitVersionProbe.out, gitVersionProbe.err
}

func MinGitVersion() string {
	return minGitVersion.String()
}
