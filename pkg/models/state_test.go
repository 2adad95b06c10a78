package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGameProfileState(t *testing.T) {
	s := NewGameProfileState("g1", DefaultSafeProfileID)

	assert.Equal(t, "g1", s.GameID)
	assert.Equal(t, DefaultSafeProfileID, s.SafeProfileID)
	assert.Equal(t, DefaultSafeProfileID, s.LkgProfileID, "LKG starts at the Safe baseline")
	assert.Empty(t, s.CandidateProfileID)
	assert.False(t, s.Pinned)
	assert.Empty(t, s.History)
}

func TestPushHistory(t *testing.T) {
	s := NewGameProfileState("g1", "safe")

	s.PushHistory("a")
	s.PushHistory("b")
	assert.Equal(t, []string{"b", "a"}, s.History, "newest first")

	s.PushHistory("b")
	assert.Equal(t, []string{"b", "a"}, s.History, "duplicate head is not re-pushed")

	s.PushHistory("a")
	assert.Equal(t, []string{"a", "b", "a"}, s.History, "only the head is deduplicated")
}

func TestPushHistoryTruncates(t *testing.T) {
	s := NewGameProfileState("g1", "safe")
	for i := 0; i < MaxHistory+5; i++ {
		s.PushHistory(fmt.Sprintf("p%d", i))
	}
	assert.Len(t, s.History, MaxHistory)
	assert.Equal(t, fmt.Sprintf("p%d", MaxHistory+4), s.History[0], "newest entry survives truncation")
}
