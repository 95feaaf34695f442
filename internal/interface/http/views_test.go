package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nextstep/school-api/internal/domain/entity"
)

func TestPollViewPercentages(t *testing.T) {
	p := &entity.Poll{
		ID:    1,
		Title: "Exam week",
		Options: []entity.PollOption{
			{ID: 1, Text: "Week 24"},
			{ID: 2, Text: "Week 25"},
			{ID: 3, Text: "Week 26"},
		},
		IsActive: true,
	}

	v := pollView(p, map[int]int64{1: 1, 2: 1, 3: 1})
	assert.Equal(t, int64(3), v.TotalVotes)
	for _, o := range v.Options {
		assert.Equal(t, 33.3, o.Percentage)
	}

	v = pollView(p, map[int]int64{1: 2, 2: 1})
	assert.Equal(t, int64(3), v.TotalVotes)
	assert.Equal(t, 66.7, v.Options[0].Percentage)
	assert.Equal(t, 33.3, v.Options[1].Percentage)
	assert.Equal(t, 0.0, v.Options[2].Percentage)
}

func TestPollViewNoVotes(t *testing.T) {
	p := &entity.Poll{Options: []entity.PollOption{{ID: 1, Text: "Only"}}}

	v := pollView(p, nil)
	assert.Equal(t, int64(0), v.TotalVotes)
	assert.Equal(t, 0.0, v.Options[0].Percentage)
	assert.Equal(t, int64(0), v.Options[0].Votes)
}

func TestUserViewOmitsCredentials(t *testing.T) {
	now := time.Now()
	v := userView(&entity.User{
		ID:           42,
		Email:        "a@example.com",
		Name:         "A",
		PasswordHash: "$2a$10$secret",
		Role:         entity.RoleTeacher,
		CreatedAt:    now,
	})

	assert.Equal(t, "42", v.ID)
	assert.Equal(t, "a@example.com", v.Email)
	assert.Equal(t, "TEACHER", v.Role)
}
