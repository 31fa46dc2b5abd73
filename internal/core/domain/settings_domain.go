// Package domain contains the core trust-settings model: settings domains,
// dispositions, setting records, and the accumulating result set.
package domain

import "fmt"

// SettingsDomain is a tier of trust configuration scope. Domains are visited
// in a fixed order by composed queries; they never override each other.
type SettingsDomain int

const (
	SettingsDomainUser SettingsDomain = iota
	SettingsDomainAdmin
	SettingsDomainSystem
)

var settingsDomainStrings = map[SettingsDomain]string{
	SettingsDomainUser:   "user",
	SettingsDomainAdmin:  "admin",
	SettingsDomainSystem: "system",
}

var stringToSettingsDomain = map[string]SettingsDomain{
	"user":   SettingsDomainUser,
	"admin":  SettingsDomainAdmin,
	"system": SettingsDomainSystem,
}

// String returns the string representation.
func (d SettingsDomain) String() string {
	if s, ok := settingsDomainStrings[d]; ok {
		return s
	}
	return fmt.Sprintf("domain(%d)", int(d))
}

// IsValid reports whether d is one of the three known domains.
func (d SettingsDomain) IsValid() bool {
	_, ok := settingsDomainStrings[d]
	return ok
}

// ParseSettingsDomain converts a string into a SettingsDomain.
func ParseSettingsDomain(s string) (SettingsDomain, error) {
	if d, ok := stringToSettingsDomain[s]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown settings domain %q", s)
}
