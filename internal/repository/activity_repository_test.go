package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

func TestActivityRepositoryRecentNewestFirst(t *testing.T) {
	repo := NewActivityRepository(3)
	assert.Empty(t, repo.Recent(4))

	for i := 1; i <= 5; i++ {
		repo.Append(models.Activity{ID: fmt.Sprint(i)})
	}

	recent := repo.Recent(4)
	assert.Len(t, recent, 3)
	assert.Equal(t, "5", recent[0].ID)
	assert.Equal(t, "3", recent[2].ID)
	assert.Equal(t, "5", repo.Recent(1)[0].ID)
}
