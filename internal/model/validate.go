package model

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{5,20}$`)
)

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}
