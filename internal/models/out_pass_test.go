package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPass() *OutPass {
	return &OutPass{
		RequesterUserID: "stu21CS001",
		PassType:        PassTypeOut,
		FromDatetime:    "2025-07-01 09:00",
		ToDatetime:      "2025-07-01 17:00",
		Status:          PassPending,
		AdvisorStatus:   PassPending,
		HodStatus:       PassPending,
	}
}

func TestAdvisorRejectIsTerminal(t *testing.T) {
	p := newPass()
	require.NoError(t, p.ApplyAdvisorDecision(PassRejected, "t1", "clash with labs", "", ""))
	assert.Equal(t, PassRejected, p.Status)
	assert.Equal(t, PassRejected, p.AdvisorStatus)

	assert.ErrorIs(t, p.ApplyHodDecision(PassApproved, "h1", ""), ErrAlreadyDecided)
	assert.ErrorIs(t, p.ApplyAdvisorDecision(PassApproved, "t1", "", "", ""), ErrAlreadyDecided)
}

func TestTwoStageApproval(t *testing.T) {
	p := newPass()
	require.NoError(t, p.ApplyAdvisorDecision(PassApproved, "t1", "ok", "", ""))
	assert.Equal(t, PassPending, p.Status) // still waiting on hod
	assert.Equal(t, PassApproved, p.AdvisorStatus)
	assert.Equal(t, "t1", p.AdvisorUserID)

	require.NoError(t, p.ApplyHodDecision(PassApproved, "h1", "fine"))
	assert.Equal(t, PassApproved, p.Status)
	assert.Equal(t, "h1", p.HodUserID)
}

func TestHodRejectAfterAdvisorApproval(t *testing.T) {
	p := newPass()
	require.NoError(t, p.ApplyAdvisorDecision(PassApproved, "t1", "", "", ""))
	require.NoError(t, p.ApplyHodDecision(PassRejected, "h1", "exam week"))
	assert.Equal(t, PassRejected, p.Status)
	assert.Equal(t, PassRejected, p.HodStatus)
}

func TestHodCannotDecideBeforeAdvisor(t *testing.T) {
	p := newPass()
	assert.ErrorIs(t, p.ApplyHodDecision(PassApproved, "h1", ""), ErrNotAtHodStage)
}

func TestAdvisorCanTrimWindow(t *testing.T) {
	p := newPass()
	require.NoError(t, p.ApplyAdvisorDecision(PassApproved, "t1", "", "", "2025-07-01 14:00"))
	assert.Equal(t, "2025-07-01 09:00", p.FromDatetime) // untouched
	assert.Equal(t, "2025-07-01 14:00", p.ToDatetime)
}

func TestOverrideSkipsStages(t *testing.T) {
	p := newPass()
	require.NoError(t, p.ApplyOverride(PassApproved, "principal1", "sports meet"))
	assert.Equal(t, PassApproved, p.Status)
	assert.Equal(t, PassPending, p.AdvisorStatus)
	assert.Equal(t, PassPending, p.HodStatus)
	assert.Equal(t, "principal1", p.ApproverUserID)

	assert.ErrorIs(t, p.ApplyOverride(PassRejected, "admin", ""), ErrAlreadyDecided)
}

func TestInvalidDecision(t *testing.T) {
	p := newPass()
	assert.ErrorIs(t, p.ApplyAdvisorDecision("maybe", "t1", "", "", ""), ErrInvalidDecision)
	assert.ErrorIs(t, p.ApplyOverride("", "a", ""), ErrInvalidDecision)
}

func TestIsValidPassType(t *testing.T) {
	for _, v := range []string{PassTypeOut, PassTypeOD, PassTypeEmergency, PassTypeOther} {
		assert.True(t, IsValidPassType(v))
	}
	assert.False(t, IsValidPassType("vacation"))
}
