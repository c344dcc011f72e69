// Package helpers holds small utilities shared by crawlsched's test files.
package helpers

import (
	"path"
	"runtime"

	"github.com/iParadigms/crawlsched"
)

// LoadTestConfig loads the given test config yaml file. The given path is
// assumed to be relative to the `crawlsched/helpers/` directory, the
// location of this file. This will panic if it cannot read the requested
// config file. If you expect an error or are testing
// crawlsched.ReadConfigFile, use GetTestFileDir instead.
func LoadTestConfig(filename string) {
	testdir := GetTestFileDir()
	err := crawlsched.ReadConfigFile(path.Join(testdir, filename))
	if err != nil {
		panic(err.Error())
	}
}

// GetTestFileDir returns the directory where shared test files are stored,
// for example test config files. It will panic if it could not get the
// path from the runtime.
func GetTestFileDir() string {
	_, p, _, ok := runtime.Caller(0)
	if !ok {
		panic("Failed to get location of test source file")
	}
	return path.Dir(p)
}
