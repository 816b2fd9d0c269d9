//go:build !unix

package preflight

func dirReadable(path string) error {
	return listDir(path)
}
