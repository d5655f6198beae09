package repository

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// SnapshotSource provides the collections the catalog is seeded from.
type SnapshotSource interface {
	Courses(ctx context.Context) ([]models.Course, error)
	Students(ctx context.Context) ([]models.Student, error)
	Registrations(ctx context.Context) ([]models.Registration, error)
}

// LoadSnapshot reads the three collections concurrently and fails on the first error.
func LoadSnapshot(ctx context.Context, src SnapshotSource) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		courses, err := src.Courses(ctx)
		if err != nil {
			return fmt.Errorf("load courses: %w", err)
		}
		snap.Courses = courses
		return nil
	})
	g.Go(func() error {
		students, err := src.Students(ctx)
		if err != nil {
			return fmt.Errorf("load students: %w", err)
		}
		snap.Students = students
		return nil
	})
	g.Go(func() error {
		regs, err := src.Registrations(ctx)
		if err != nil {
			return fmt.Errorf("load registrations: %w", err)
		}
		snap.Registrations = regs
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
