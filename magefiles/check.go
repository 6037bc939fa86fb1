//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Check mg.Namespace

// Runs the full engine test suite.
func (Check) Test() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Vets the engine sources.
func (Check) Vet() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Tidies module dependencies.
func (Check) Tidy() error {
	if _, err := executeCmd("go", withArgs("mod", "tidy"), withDir(".")); err != nil {
		return err
	}
	return nil
}
