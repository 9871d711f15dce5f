package models

import (
	"errors"
	"fmt"
)

var ErrUnknownIcon = errors.New("unknown icon name")

// IconName is the closed set of icons the public site can render for
// milestones and shield values. Resolved to a component at render time,
// so an unknown value must never reach the database.
type IconName string

const (
	IconStar    IconName = "star"
	IconFlag    IconName = "flag"
	IconShield  IconName = "shield"
	IconTorch   IconName = "torch"
	IconLaurel  IconName = "laurel"
	IconBook    IconName = "book"
	IconTrumpet IconName = "trumpet"
	IconDrum    IconName = "drum"
)

func (i IconName) Valid() bool {
	switch i {
	case IconStar, IconFlag, IconShield, IconTorch, IconLaurel, IconBook, IconTrumpet, IconDrum:
		return true
	}
	return false
}

func ParseIconName(s string) (IconName, error) {
	icon := IconName(s)
	if !icon.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownIcon, s)
	}
	return icon, nil
}
