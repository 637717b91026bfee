// Package model defines the profile-aware Factur-X invoice data model.
// An Invoice is a single tagged variant: the Profile discriminant says which
// of the optional slots must be populated, and validation of those rules
// lives in the validate package. Instances are treated as immutable once
// validated; no component mutates an invoice after handing it on.
package model

import "fmt"

// Profile identifies a Factur-X conformance profile. Profiles are ordered:
// every profile's mandatory field set is a superset of all lower profiles'.
// The validator and parser rely on this monotonic ordering.
type Profile int

const (
	ProfileMinimum Profile = iota
	ProfileBasicWL
	ProfileBasic
	ProfileEN16931
)

// Profiles lists all supported profiles in increasing strictness.
var Profiles = []Profile{ProfileMinimum, ProfileBasicWL, ProfileBasic, ProfileEN16931}

// Guideline URNs identifying each profile in the
// GuidelineSpecifiedDocumentContextParameter element.
const (
	URNMinimum = "urn:factur-x.eu:1p0:minimum"
	URNBasicWL = "urn:factur-x.eu:1p0:basicwl"
	URNBasic   = "urn:cen.eu:en16931:2017#compliant#urn:factur-x.eu:1p0:basic"
	URNEN16931 = "urn:cen.eu:en16931:2017"
)

var profileNames = map[Profile]string{
	ProfileMinimum: "MINIMUM",
	ProfileBasicWL: "BASIC WL",
	ProfileBasic:   "BASIC",
	ProfileEN16931: "EN 16931",
}

var profileURNs = map[Profile]string{
	ProfileMinimum: URNMinimum,
	ProfileBasicWL: URNBasicWL,
	ProfileBasic:   URNBasic,
	ProfileEN16931: URNEN16931,
}

func (p Profile) String() string {
	if name, ok := profileNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Profile(%d)", int(p))
}

// URN returns the guideline URN written to and read from the wire.
func (p Profile) URN() string {
	return profileURNs[p]
}

// ProfileFromURN resolves a guideline URN to its profile.
func ProfileFromURN(urn string) (Profile, bool) {
	for p, u := range profileURNs {
		if u == urn {
			return p, true
		}
	}
	return 0, false
}

// AtLeast reports whether p is o or a stricter profile.
func (p Profile) AtLeast(o Profile) bool {
	return p >= o
}

// MarshalText renders the profile name for JSON and CLI output.
func (p Profile) MarshalText() ([]byte, error) {
	name, ok := profileNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown profile %d", int(p))
	}
	return []byte(name), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (p *Profile) UnmarshalText(text []byte) error {
	for prof, name := range profileNames {
		if name == string(text) {
			*p = prof
			return nil
		}
	}
	return fmt.Errorf("unknown profile %q", string(text))
}
