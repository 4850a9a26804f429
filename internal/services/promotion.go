package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/banlamduan-school/gradebook-service/internal/events"
	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/banlamduan-school/gradebook-service/internal/repositories"
)

// Promote computes the next academic year's roster from the current one.
// It is a pure function: the input roster is never mutated.
//
// For each student, the first matching rule wins:
//
//  1. Retained students repeat their grade in the same classroom; the flag
//     is cleared so retention never compounds across years.
//  2. Feeder-grade (p6) students marked as transferring out leave the
//     school and are dropped from the roster.
//  3. Terminal-grade (m3) students graduate and are dropped.
//  4. Everyone else advances one grade, keeping their classroom key, with
//     both status flags cleared.
//
// A grade key outside the progression graph is left untouched: the record
// stays in its cell rather than being lost.
func Promote(roster models.Roster) models.Roster {
	next := make(models.Roster, len(roster))
	for grade := range roster {
		next[grade] = make(map[string][]models.Student)
	}

	place := func(grade, room string, s models.Student) {
		if next[grade] == nil {
			next[grade] = make(map[string][]models.Student)
		}
		next[grade][room] = append(next[grade][room], s)
	}

	for grade, rooms := range roster {
		for room, students := range rooms {
			for _, student := range students {
				switch {
				case student.Retained:
					student.Retained = false
					place(grade, room, student)

				case grade == models.FeederGrade && student.TransferringOut:
					// Leaves the school; treated like a graduate.

				case grade == models.TerminalGrade:
					// Graduates.

				default:
					target, ok := models.NextGrade(grade)
					if !ok {
						// Unknown grade key: keep the record where it is.
						place(grade, room, student)
						continue
					}
					student.Retained = false
					student.TransferringOut = false
					place(target, room, student)
				}
			}
		}
	}

	for _, rooms := range next {
		for _, students := range rooms {
			models.SortRoom(students)
		}
	}

	return next
}

// PromotionSummary reports what a promotion run did.
type PromotionSummary struct {
	Promoted       int `json:"promoted"`
	Retained       int `json:"retained"`
	Graduated      int `json:"graduated"`
	TransferredOut int `json:"transferred_out"`
}

type promotionService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewPromotionService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger) PromotionService {
	return &promotionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Run applies the end-of-year promotion and replaces the stored roster
// wholesale. The caller is responsible for confirming the action with the
// user first; it cannot be undone.
func (s *promotionService) Run(ctx context.Context) (*PromotionSummary, error) {
	roster, err := s.repo.Roster().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	summary := summarize(roster)
	promoted := Promote(roster)

	if err := s.repo.Roster().Save(ctx, promoted); err != nil {
		return nil, fmt.Errorf("failed to save promoted roster: %w", err)
	}

	s.logger.Info("Promotion run completed",
		"promoted", summary.Promoted,
		"retained", summary.Retained,
		"graduated", summary.Graduated,
		"transferred_out", summary.TransferredOut)

	event := events.NewStudentsPromotedEvent(
		summary.Promoted, summary.Retained, summary.Graduated, summary.TransferredOut)
	if err := s.publisher.PublishGradebookEvent(ctx, event); err != nil {
		// The roster is already saved; a lost event must not fail the run.
		s.logger.Error("Failed to publish promotion event", "error", err)
	}

	return summary, nil
}

// summarize classifies every student of the input roster by the rule
// Promote will apply to them.
func summarize(roster models.Roster) *PromotionSummary {
	summary := &PromotionSummary{}
	for grade, rooms := range roster {
		for _, students := range rooms {
			for _, student := range students {
				switch {
				case student.Retained:
					summary.Retained++
				case grade == models.FeederGrade && student.TransferringOut:
					summary.TransferredOut++
				case grade == models.TerminalGrade:
					summary.Graduated++
				default:
					if _, ok := models.NextGrade(grade); ok {
						summary.Promoted++
					}
				}
			}
		}
	}
	return summary
}
