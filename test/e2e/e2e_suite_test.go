package e2e

import (
	"bytes"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bvmc/bvmc/pkg/cli"
)

func TestEndToEnd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "End-to-end")
}

type result struct {
	out    string
	stderr string
	err    error
}

// bvmc runs the command line in process.
func bvmc(args ...string) result {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return result{out: out.String(), stderr: errOut.String(), err: err}
}

func model(name string) string {
	return filepath.Join("testdata", name)
}

func scenario(name string) string {
	return filepath.Join("..", "..", "pkg", "btor", "testdata", name)
}
