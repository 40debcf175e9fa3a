//go:build !unix && !windows

package localesync

func isBusy(error) bool {
	return false
}
