package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/spetersoncode/mailroute/notify"
	"github.com/spetersoncode/mailroute/workflow"
)

func TestCollectorRun(t *testing.T) {
	c := New(prometheus.NewRegistry())

	c.RunStarted()
	c.StepFinished(workflow.NodeClassify, 10*time.Millisecond, nil)
	c.RouteSelected(workflow.DecisionSummarize)
	c.StepFinished(workflow.NodeFetchContent, 10*time.Millisecond, errors.New("boom"))
	c.RunFinished(workflow.DecisionSummarize, 20*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.routes.WithLabelValues("summarize")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.stepFailures.WithLabelValues("email_content_validator")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.stepFailures.WithLabelValues("initial_validator")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsFinished.WithLabelValues("summarize", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.stepDuration))
}

func TestCollectorRunWithoutBranch(t *testing.T) {
	c := New(prometheus.NewRegistry())
	c.RunFinished("", time.Millisecond, errors.New("classification failed"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsFinished.WithLabelValues("none", "error")))
}

func TestCollectorNotificationFailed(t *testing.T) {
	c := New(prometheus.NewRegistry())

	c.NotificationFailed(&notify.NotificationError{StatusCode: 502})
	c.NotificationFailed(&notify.NotificationError{StatusCode: 404})
	c.NotificationFailed(&notify.NotificationError{})
	c.NotificationFailed(&notify.NotificationError{StatusCode: 503})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.notifyFailure.WithLabelValues("5xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.notifyFailure.WithLabelValues("4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.notifyFailure.WithLabelValues("transport")))
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
