//go:build !windows

package platform

const hostFamily = FamilyUnix
