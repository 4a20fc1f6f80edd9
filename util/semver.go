package util

import (
	"fmt"
	"strconv"
	"strings"
)

type Semver struct {
	Major      int
	Minor      int
	Patch      int
	Beta       bool
	Alpha      bool
	Prerelease int
}

func Parse(semver string) (Semver, error) {
	split := strings.Split(semver, ".")
	if len(split) < 3 {
		return Semver{}, fmt.Errorf("invalid version: %s", semver)
	}

	s := Semver{}
	var err error
	if s.Major, err = strconv.Atoi(split[0]); err != nil {
		return Semver{}, err
	}
	if s.Minor, err = strconv.Atoi(split[1]); err != nil {
		return Semver{}, err
	}

	patch := strings.SplitN(split[2], "-", 2)
	if s.Patch, err = strconv.Atoi(patch[0]); err != nil {
		return Semver{}, err
	}

	if len(patch) > 1 {
		pre := strings.Split(strings.Join(append(patch[1:], split[3:]...), "."), ".")
		switch pre[0] {
		case "beta":
			s.Beta = true
		case "alpha":
			s.Alpha = true
		default:
			return Semver{}, fmt.Errorf("invalid prerelease type: %s", pre[0])
		}
		if len(pre) > 1 {
			if s.Prerelease, err = strconv.Atoi(pre[1]); err != nil {
				return Semver{}, err
			}
		}
	}

	return s, nil
}

func (s Semver) String() string {
	str := strconv.Itoa(s.Major) + "." + strconv.Itoa(s.Minor) + "." + strconv.Itoa(s.Patch)
	if s.Beta {
		str += "-beta." + strconv.Itoa(s.Prerelease)
	} else if s.Alpha {
		str += "-alpha." + strconv.Itoa(s.Prerelease)
	}
	return str
}

func (s Semver) Satisfies(cmp string) (bool, error) {
	tilde := strings.HasPrefix(cmp, "~")
	caret := strings.HasPrefix(cmp, "^")
	gt := strings.HasPrefix(cmp, ">")
	lt := strings.HasPrefix(cmp, "<")
	if tilde || caret || gt || lt {
		cmp = cmp[1:]
	}

	c, err := Parse(cmp)
	if err != nil {
		return false, err
	}

	if (tilde && (c.Major != s.Major || c.Minor != s.Minor || c.Patch > s.Patch)) ||
		(caret && (c.Major != s.Major || c.Minor > s.Minor || c.Patch > s.Patch)) ||
		(gt && (c.Major > s.Major || c.Minor > s.Minor || c.Patch > s.Patch)) ||
		(lt && (c.Major < s.Major || c.Minor < s.Minor || c.Patch < s.Patch)) ||
		(!tilde && !caret && !gt && !lt && (c.Major != s.Major || c.Minor != s.Minor || c.Patch != s.Patch)) {
		return false, nil
	}

	return true, nil
}
