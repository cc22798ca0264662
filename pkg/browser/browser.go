// Package browser describes the browser versions a suite is
// expanded over and the tokens that enable them.
package browser

import "fmt"

// Family identifies a browser family as used by expectation and
// marker records.
type Family string

const (
	FamilyChrome Family = "CHROME"
	FamilyIE     Family = "IE"
	FamilyFF     Family = "FF"
	FamilyFF78   Family = "FF78"
)

// Families lists every family in declaration order.
var Families = []Family{FamilyChrome, FamilyIE, FamilyFF, FamilyFF78}

// ParseFamily parses a family name case-sensitively.
func ParseFamily(s string) (Family, error) {
	for _, f := range Families {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown browser family %q", s)
}

// UnmarshalText lets families be decoded from YAML and JSON.
func (f *Family) UnmarshalText(b []byte) error {
	parsed, err := ParseFamily(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Version is an immutable browser version. Parent is the family
// without the version qualifier; it equals Family for versions that
// have no qualifier.
type Version struct {
	nickname string
	family   Family
	parent   Family
}

var (
	Chrome           = Version{nickname: "Chrome", family: FamilyChrome, parent: FamilyChrome}
	Firefox          = Version{nickname: "FF", family: FamilyFF, parent: FamilyFF}
	Firefox78        = Version{nickname: "FF78", family: FamilyFF78, parent: FamilyFF}
	InternetExplorer = Version{nickname: "IE", family: FamilyIE, parent: FamilyIE}
)

// AllVersions lists the supported versions in declaration order.
var AllVersions = []Version{Chrome, Firefox78, Firefox, InternetExplorer}

func (v Version) Nickname() string { return v.nickname }
func (v Version) Family() Family   { return v.family }
func (v Version) Parent() Family   { return v.parent }
func (v Version) String() string   { return v.nickname }

// IsFirefox reports whether v is any Firefox version.
func (v Version) IsFirefox() bool { return v.parent == FamilyFF }
