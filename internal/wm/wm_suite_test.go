package wm_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestWM(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Window Manager Suite")
}
