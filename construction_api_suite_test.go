package main_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConstructionAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ConstructionAPI Suite")
}
