package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCourse(t *testing.T) {
	tests := []struct {
		course string
		valid  bool
	}{
		{"CS101", true},
		{"MA1", true},
		{"cs101", true},
		{"AB999", true},
		{"C1", false},
		{"CSC1000", false},
		{"101CS", false},
		{"CS", false},
		{"CS1234", false},
		{"", false},
		{"CS 101", false},
	}

	for _, tt := range tests {
		t.Run(tt.course, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateCourse(tt.course))
		})
	}
}

func TestSearchCriteriaIsEmpty(t *testing.T) {
	assert.True(t, SearchCriteria{}.IsEmpty())

	id := int64(3)
	assert.False(t, SearchCriteria{StudentID: &id}.IsEmpty())
	assert.False(t, SearchCriteria{Name: "Alice"}.IsEmpty())
	assert.False(t, SearchCriteria{Course: "CS"}.IsEmpty())
	assert.False(t, SearchCriteria{EnrollmentFrom: "2024-01-01"}.IsEmpty())
	assert.False(t, SearchCriteria{EnrollmentTo: "2024-12-31"}.IsEmpty())
}
