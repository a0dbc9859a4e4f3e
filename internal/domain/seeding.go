package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task is a piece of work attached to a case. Tasks are seeded on creation
// and do not take part in the closure gate.
type Task struct {
	ID        uuid.UUID
	CaseID    uuid.UUID
	Title     string
	DueAt     *time.Time
	Status    TaskStatus
	CreatedAt time.Time
}

// SeedPlan is the set of children created together with a case.
type SeedPlan struct {
	Items []ComplianceItem
	Tasks []Task
}

// SeedPolicy computes the default children of a new case.
// Implementations must be pure: the same inputs yield the same plan (ids aside).
type SeedPolicy func(caseType, jurisdiction string, now time.Time) SeedPlan

// SeedOffsets holds the due-date offsets of the standard policy.
type SeedOffsets struct {
	StatementOfAffairs time.Duration
	TaxFiling          time.Duration
	DocumentReview     time.Duration
	InitialMeeting     time.Duration
}

// DefaultSeedOffsets returns the offsets used when none are configured.
func DefaultSeedOffsets() SeedOffsets {
	const day = 24 * time.Hour
	return SeedOffsets{
		StatementOfAffairs: 7 * day,
		TaxFiling:          14 * day,
		DocumentReview:     3 * day,
		InitialMeeting:     5 * day,
	}
}

// StandardSeedPolicy seeds two mandatory filings and two onboarding tasks.
func StandardSeedPolicy(off SeedOffsets) SeedPolicy {
	return func(caseType, jurisdiction string, now time.Time) SeedPlan {
		due := func(d time.Duration) *time.Time {
			t := now.Add(d)
			return &t
		}

		return SeedPlan{
			Items: []ComplianceItem{
				{
					ID:        uuid.New(),
					Title:     fmt.Sprintf("Statement of Affairs (%s)", caseType),
					Mandatory: true,
					DueAt:     due(off.StatementOfAffairs),
					Status:    ItemStatusPending,
					CreatedAt: now,
					UpdatedAt: now,
				},
				{
					ID:        uuid.New(),
					Title:     fmt.Sprintf("Tax Filing (%s)", jurisdiction),
					Mandatory: true,
					DueAt:     due(off.TaxFiling),
					Status:    ItemStatusPending,
					CreatedAt: now,
					UpdatedAt: now,
				},
			},
			Tasks: []Task{
				{
					ID:        uuid.New(),
					Title:     fmt.Sprintf("Review opening documents (%s)", caseType),
					DueAt:     due(off.DocumentReview),
					Status:    TaskStatusTodo,
					CreatedAt: now,
				},
				{
					ID:        uuid.New(),
					Title:     fmt.Sprintf("Initial meeting scheduled (%s)", jurisdiction),
					DueAt:     due(off.InitialMeeting),
					Status:    TaskStatusTodo,
					CreatedAt: now,
				},
			},
		}
	}
}

// Bind attaches every child of the plan to the given case.
func (p SeedPlan) Bind(caseID uuid.UUID) SeedPlan {
	items := make([]ComplianceItem, len(p.Items))
	for i, it := range p.Items {
		it.CaseID = caseID
		items[i] = it
	}
	tasks := make([]Task, len(p.Tasks))
	for i, t := range p.Tasks {
		t.CaseID = caseID
		tasks[i] = t
	}
	return SeedPlan{Items: items, Tasks: tasks}
}
