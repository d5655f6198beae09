package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

func TestActivityRecordsInlineWithoutQueue(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewActivityService(repository.NewActivityRepository(5), metrics, nil)

	svc.Record(models.ActivityGrade, "Grade A recorded", "STU001", "admin_001")
	svc.Record(models.ActivityCourse, "Course updated", "CS101", "admin_001")

	recent := svc.Recent(10)
	require.Len(t, recent, 2)
	assert.Equal(t, "Course updated", recent[0].Message)
	assert.Equal(t, "award", recent[1].Icon)
	assert.NotEmpty(t, recent[1].ID)

	assert.Len(t, svc.ForSubject("STU001", 5), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.activity.WithLabelValues("grade")))
}

func TestActivityQueueFlushesOnStop(t *testing.T) {
	store := repository.NewActivityRepository(20)
	svc := NewActivityService(store, nil, nil)
	svc.Start(context.Background(), 2, 8)

	for i := 0; i < 10; i++ {
		svc.Record(models.ActivityRegistration, "New registration", "STU006", "student_123")
	}
	svc.Stop()

	assert.Len(t, store.Recent(0), 10)
	assert.Len(t, svc.ForSubject("STU006", 3), 3)
}
