package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPairKey_OrderIndependent(t *testing.T) {
	assert.Equal(t, NewPairKey("b-2", "a-1"), NewPairKey("a-1", "b-2"))
	assert.Equal(t, PairKey("a-1|b-2"), NewPairKey("b-2", "a-1"))
}

func TestValidateEngagementID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "plain", id: "eng-42"},
		{name: "max length", id: strings.Repeat("x", MaxIDLength)},
		{name: "empty", id: "", wantErr: true},
		{name: "too long", id: strings.Repeat("x", MaxIDLength+1), wantErr: true},
		{name: "separator", id: "a|b", wantErr: true},
		{name: "trailing separator", id: "a|", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEngagementID(tt.id)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEngagementID)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewPairKey_DistinctPairsDoNotCollide(t *testing.T) {
	// "a|b"+"c" и "a"+"b|c" дали бы одинаковый ключ, поэтому такие ID отклоняются
	assert.Error(t, ValidateEngagementID("a|b"))
	assert.Error(t, ValidateEngagementID("b|c"))
	assert.NotEqual(t, NewPairKey("a", "bc"), NewPairKey("ab", "c"))
}

func TestConflictRecord_Involves(t *testing.T) {
	r := &ConflictRecord{PrimaryEngagementID: "10", ConflictingEngagementID: "20"}
	assert.True(t, r.Involves("10"))
	assert.True(t, r.Involves("20"))
	assert.False(t, r.Involves("1"))
}

func TestSeverity_Rank(t *testing.T) {
	assert.Less(t, SeverityCritical.Rank(), SeverityWarning.Rank())
	assert.Less(t, SeverityWarning.Rank(), SeverityManageable.Rank())
}

func TestBlocksConfirmation(t *testing.T) {
	records := []*ConflictRecord{
		{Severity: SeverityWarning},
		{Severity: SeverityCritical, IsResolved: true},
	}
	assert.False(t, BlocksConfirmation(records))

	records = append(records, &ConflictRecord{Severity: SeverityCritical})
	assert.True(t, BlocksConfirmation(records))
}

func TestResolution_IsValid(t *testing.T) {
	assert.True(t, ResolutionRescheduled.IsValid())
	assert.False(t, Resolution("ignored").IsValid())
}
