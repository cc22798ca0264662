package suite

import (
	"testing"

	"digital.vasic.browserrunner/pkg/browser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func result(status Status, method string) *Result {
	return &Result{
		Description: Description{Class: "C", Method: method, Target: browser.NativeTarget(browser.Chrome)},
		Status:      status,
		Error:       "boom",
	}
}

func TestReport_CountsAndPassed(t *testing.T) {
	r := &Report{Description: "C"}
	r.Add(result(StatusPassed, "a"), result(StatusSkipped, "b"))
	assert.True(t, r.Passed())
	assert.NoError(t, r.Err())

	other := &Report{}
	other.Add(result(StatusFailed, "c"), result(StatusError, "d"))
	r.Merge(other)
	r.Merge(nil)

	assert.False(t, r.Passed())
	assert.Equal(t, map[Status]int{
		StatusPassed: 1, StatusSkipped: 1, StatusFailed: 1, StatusError: 1,
	}, r.Counts())
}

func TestReport_Err(t *testing.T) {
	r := &Report{}
	r.Add(result(StatusFailed, "c"), result(StatusPassed, "p"), result(StatusError, "d"))

	err := r.Err()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), "C.c [Chrome]: failed: boom")
	assert.Contains(t, err.Error(), "C.d [Chrome]: error: boom")
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) UnitStarted(d Description) { m.Called(d) }
func (m *mockNotifier) UnitFinished(r *Result)    { m.Called(r) }

func TestNotifiers_FanOut(t *testing.T) {
	res := result(StatusPassed, "a")
	a, b := &mockNotifier{}, &mockNotifier{}
	for _, m := range []*mockNotifier{a, b} {
		m.On("UnitStarted", res.Description).Return()
		m.On("UnitFinished", res).Return()
	}

	n := Notifiers{a, nil, b}
	n.UnitStarted(res.Description)
	n.UnitFinished(res)

	a.AssertExpectations(t)
	b.AssertExpectations(t)
}
