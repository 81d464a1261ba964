// Package ci detects the continuous integration service a process runs
// under by looking at the variables each service sets.
package ci

import (
	"strings"

	"github.com/yaklabco/stdkit/pkg/env"
)

// Provider identifies a CI service.
type Provider struct {
	// Name is the display name, e.g. "GitHub Actions".
	Name string

	// ID is a stable lower case identifier, e.g. "github".
	ID string
}

type driver struct {
	provider Provider
	match    func(env.Env) bool
}

// has reports whether key is set to a non-empty value.
func has(key string) func(env.Env) bool {
	return func(e env.Env) bool {
		return e.Get(key) != ""
	}
}

// truthy reports whether key is set to "true" or "1", ignoring case.
func truthy(key string) func(env.Env) bool {
	return func(e env.Env) bool {
		v := strings.ToLower(strings.TrimSpace(e.Get(key)))
		return v == "true" || v == "1"
	}
}

// Specific services come before the generic CI=true fallback.
//
//nolint:gochecknoglobals // Read-only lookup table.
var drivers = []driver{
	{Provider{"GitHub Actions", "github"}, truthy("GITHUB_ACTIONS")},
	{Provider{"GitLab CI", "gitlab"}, has("GITLAB_CI")},
	{Provider{"Azure Pipelines", "azure"}, has("TF_BUILD")},
	{Provider{"Jenkins", "jenkins"}, func(e env.Env) bool { return e.Get("JENKINS_URL") != "" && e.Get("BUILD_ID") != "" }},
	{Provider{"CircleCI", "circleci"}, truthy("CIRCLECI")},
	{Provider{"Travis CI", "travis"}, truthy("TRAVIS")},
	{Provider{"Bitbucket Pipelines", "bitbucket"}, has("BITBUCKET_BUILD_NUMBER")},
	{Provider{"TeamCity", "teamcity"}, has("TEAMCITY_VERSION")},
	{Provider{"Buildkite", "buildkite"}, truthy("BUILDKITE")},
	{Provider{"AppVeyor", "appveyor"}, truthy("APPVEYOR")},
	{Provider{"Drone", "drone"}, truthy("DRONE")},
	{Provider{"Generic CI", "generic"}, truthy("CI")},
}

// Providers lists every service Detect knows, in detection order.
func Providers() []Provider {
	out := make([]Provider, len(drivers))
	for i, d := range drivers {
		out[i] = d.provider
	}
	return out
}

// Detect returns the first provider whose variables are present in e.
func Detect(e env.Env) (Provider, bool) {
	for _, d := range drivers {
		if d.match(e) {
			return d.provider, true
		}
	}
	return Provider{}, false
}

// IsCI reports whether e looks like a CI environment.
func IsCI(e env.Env) bool {
	_, ok := Detect(e)
	return ok
}
