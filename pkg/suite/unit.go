package suite

import (
	"fmt"

	"digital.vasic.browserrunner/pkg/browser"
	"digital.vasic.browserrunner/pkg/expect"
)

// Description names one runnable unit.
type Description struct {
	Class  string         `json:"class"`
	Method string         `json:"method"`
	Target browser.Target `json:"target"`
}

// String renders "Class.Method [hu-FF78]".
func (d Description) String() string {
	return fmt.Sprintf("%s.%s [%s]", d.Class, d.Method, d.Target)
}

// Path renders "Class/Method/hu-ff78" for glob matching.
func (d Description) Path() string {
	return d.Class + "/" + d.Method + "/" + d.Target.Token()
}

// Unit is one (method, target) pair of a class. It is created when
// the suite is built and never mutated.
type Unit struct {
	class  string
	method *Method
	target browser.Target
}

// NewUnit binds method to target.
func NewUnit(class string, method *Method, target browser.Target) *Unit {
	return &Unit{class: class, method: method, target: target}
}

func (u *Unit) Method() *Method         { return u.method }
func (u *Unit) Target() browser.Target { return u.target }

// Description returns the unit's description.
func (u *Unit) Description() Description {
	return Description{Class: u.class, Method: u.method.Name, Target: u.target}
}

// ExpectedAlerts resolves the alerts expected on this unit's
// browser version. Standards-mode methods with a standards record
// resolve from it; everything else resolves from Alerts.
func (u *Unit) ExpectedAlerts() []string {
	v := u.target.Version
	if u.method.StandardsMode && u.method.AlertsStandards != nil {
		return u.method.AlertsStandards.Resolve(v)
	}
	return u.method.Alerts.Resolve(v)
}

// NotYetImplemented reports whether the unit's outcome is inverted:
// the method is marked not yet implemented for this family, or
// marked buggy under a natively driven browser.
func (u *Unit) NotYetImplemented() bool {
	v := u.target.Version
	if u.method.NotYetImplemented.Covers(v) {
		return true
	}
	return u.target.Native && u.method.BuggyWebDriver.Covers(v)
}

// Tries returns the number of attempts the unit gets.
func (u *Unit) Tries() int { return u.method.Tries.Count() }

// VerifyAlerts checks the alerts collected by the test against the
// ones expected on this unit's browser version.
func (u *Unit) VerifyAlerts(actual []string) error {
	return expect.VerifyAlerts(u.ExpectedAlerts(), actual)
}
