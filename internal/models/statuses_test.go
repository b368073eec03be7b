package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationTransitionGraph(t *testing.T) {
	t.Parallel()

	forward := []ApplicationStatus{
		ApplicationStatusNew,
		ApplicationStatusReviewing,
		ApplicationStatusShortlisted,
		ApplicationStatusInterviewing,
		ApplicationStatusInterviewed,
		ApplicationStatusOffer,
		ApplicationStatusHired,
	}
	for i := 0; i < len(forward)-1; i++ {
		assert.True(t, CanTransition(forward[i], forward[i+1]),
			"%s -> %s should be allowed", forward[i], forward[i+1])
	}

	// No skipping stages, no moving backwards.
	assert.False(t, CanTransition(ApplicationStatusNew, ApplicationStatusShortlisted))
	assert.False(t, CanTransition(ApplicationStatusNew, ApplicationStatusHired))
	assert.False(t, CanTransition(ApplicationStatusReviewing, ApplicationStatusNew))
	assert.False(t, CanTransition(ApplicationStatusOffer, ApplicationStatusInterviewing))

	// rejected and withdrawn are reachable from every non-terminal status.
	for _, from := range forward[:len(forward)-1] {
		assert.True(t, CanTransition(from, ApplicationStatusRejected), "from %s", from)
		assert.True(t, CanTransition(from, ApplicationStatusWithdrawn), "from %s", from)
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	t.Parallel()

	terminal := []ApplicationStatus{
		ApplicationStatusHired,
		ApplicationStatusRejected,
		ApplicationStatusWithdrawn,
	}
	all := []ApplicationStatus{
		ApplicationStatusNew, ApplicationStatusReviewing, ApplicationStatusShortlisted,
		ApplicationStatusInterviewing, ApplicationStatusInterviewed, ApplicationStatusOffer,
		ApplicationStatusHired, ApplicationStatusRejected, ApplicationStatusWithdrawn,
	}

	for _, from := range terminal {
		assert.True(t, IsTerminal(from))
		for _, to := range all {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, IsTerminal(ApplicationStatusNew))
	assert.False(t, IsTerminal(ApplicationStatus("bogus")))
}

func TestNoSelfTransitions(t *testing.T) {
	t.Parallel()

	for status := range applicationTransitions {
		assert.False(t, CanTransition(status, status), "self loop on %s", status)
	}
}

func TestStageBitsAreDistinct(t *testing.T) {
	t.Parallel()

	seen := map[int64]ApplicationStatus{}
	for status := range applicationTransitions {
		bit := StageBit(status)
		assert.NotZero(t, bit, "no bit for %s", status)
		if prev, dup := seen[bit]; dup {
			t.Fatalf("statuses %s and %s share bit %d", prev, status, bit)
		}
		seen[bit] = status
	}

	assert.Zero(t, StageBit(ApplicationStatus("bogus")))
}

func TestStatusValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, ApplicationStatusNew.Valid())
	assert.True(t, ApplicationStatusWithdrawn.Valid())
	assert.False(t, ApplicationStatus("").Valid())
	assert.False(t, ApplicationStatus("pending").Valid())

	assert.True(t, OfferStatusSent.Valid())
	assert.False(t, OfferStatus("open").Valid())

	assert.True(t, JobStatusPublished.Valid())
	assert.False(t, JobStatus("live").Valid())
}
