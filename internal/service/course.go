package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/repository"

	"github.com/google/uuid"
)

type courseService struct {
	courseRepository repository.Courses
}

func newCourseService(courseRepository repository.Courses) *courseService {
	return &courseService{
		courseRepository: courseRepository,
	}
}

func (s *courseService) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	return s.courseRepository.ListCourses(ctx)
}

func (s *courseService) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, err := s.courseRepository.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course failed: %w", err)
	}

	return course, nil
}

func (s *courseService) CreateCourse(ctx context.Context, title, slug, description string) (*domain.Course, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate course id failed: %w", err)
	}

	course := &domain.Course{
		ID:          id,
		Title:       title,
		Slug:        slug,
		Description: description,
	}

	if err := s.courseRepository.CreateCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("create course failed: %w", err)
	}

	return course, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, course *domain.Course) error {
	if err := s.courseRepository.UpdateCourse(ctx, course); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("update course failed: %w", err)
	}

	return nil
}

func (s *courseService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if err := s.courseRepository.DeleteCourse(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("delete course failed: %w", err)
	}

	return nil
}

func (s *courseService) ListModules(ctx context.Context, courseID uuid.UUID) ([]*domain.CourseModule, error) {
	return s.courseRepository.ListModules(ctx, courseID)
}

// AddModule appends at the end of the course: position is the current child
// count.
func (s *courseService) AddModule(ctx context.Context, courseID uuid.UUID, title string) (*domain.CourseModule, error) {
	siblings, err := s.courseRepository.ListModules(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list modules failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate module id failed: %w", err)
	}

	module := &domain.CourseModule{
		ID:       id,
		CourseID: courseID,
		Title:    title,
		Position: len(siblings),
	}

	if err := s.courseRepository.CreateModule(ctx, module); err != nil {
		return nil, fmt.Errorf("create module failed: %w", err)
	}

	return module, nil
}

func (s *courseService) RenameModule(ctx context.Context, id uuid.UUID, title string) error {
	if err := s.courseRepository.RenameModule(ctx, id, title); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("rename module failed: %w", err)
	}

	return nil
}

// RemoveModule deletes and re-indexes the survivors so positions stay
// contiguous.
func (s *courseService) RemoveModule(ctx context.Context, courseID, id uuid.UUID) error {
	if err := s.courseRepository.DeleteModule(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete module failed: %w", err)
	}

	siblings, err := s.courseRepository.ListModules(ctx, courseID)
	if err != nil {
		return fmt.Errorf("list modules failed: %w", err)
	}

	return s.courseRepository.SetModulePositions(ctx, courseID, idsOfModules(siblings))
}

func (s *courseService) ReorderModules(ctx context.Context, courseID uuid.UUID, orderedIDs []uuid.UUID) error {
	siblings, err := s.courseRepository.ListModules(ctx, courseID)
	if err != nil {
		return fmt.Errorf("list modules failed: %w", err)
	}

	if !sameIDSet(idsOfModules(siblings), orderedIDs) {
		return ErrOrderMismatch
	}

	return s.courseRepository.SetModulePositions(ctx, courseID, orderedIDs)
}

func (s *courseService) ListSections(ctx context.Context, moduleID uuid.UUID) ([]*domain.CourseSection, error) {
	return s.courseRepository.ListSections(ctx, moduleID)
}

func (s *courseService) AddSection(ctx context.Context, moduleID uuid.UUID, title string) (*domain.CourseSection, error) {
	siblings, err := s.courseRepository.ListSections(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("list sections failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate section id failed: %w", err)
	}

	section := &domain.CourseSection{
		ID:       id,
		ModuleID: moduleID,
		Title:    title,
		Position: len(siblings),
	}

	if err := s.courseRepository.CreateSection(ctx, section); err != nil {
		return nil, fmt.Errorf("create section failed: %w", err)
	}

	return section, nil
}

func (s *courseService) RenameSection(ctx context.Context, id uuid.UUID, title string) error {
	if err := s.courseRepository.RenameSection(ctx, id, title); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("rename section failed: %w", err)
	}

	return nil
}

func (s *courseService) RemoveSection(ctx context.Context, moduleID, id uuid.UUID) error {
	if err := s.courseRepository.DeleteSection(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete section failed: %w", err)
	}

	siblings, err := s.courseRepository.ListSections(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("list sections failed: %w", err)
	}

	return s.courseRepository.SetSectionPositions(ctx, moduleID, idsOfSections(siblings))
}

func (s *courseService) ReorderSections(ctx context.Context, moduleID uuid.UUID, orderedIDs []uuid.UUID) error {
	siblings, err := s.courseRepository.ListSections(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("list sections failed: %w", err)
	}

	if !sameIDSet(idsOfSections(siblings), orderedIDs) {
		return ErrOrderMismatch
	}

	return s.courseRepository.SetSectionPositions(ctx, moduleID, orderedIDs)
}

func (s *courseService) ListLessons(ctx context.Context, sectionID uuid.UUID) ([]*domain.Lesson, error) {
	return s.courseRepository.ListLessons(ctx, sectionID)
}

func (s *courseService) AddLesson(ctx context.Context, sectionID uuid.UUID, title, videoURL, content string) (*domain.Lesson, error) {
	siblings, err := s.courseRepository.ListLessons(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list lessons failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate lesson id failed: %w", err)
	}

	lesson := &domain.Lesson{
		ID:        id,
		SectionID: sectionID,
		Title:     title,
		VideoURL:  videoURL,
		Content:   content,
		Position:  len(siblings),
	}

	if err := s.courseRepository.CreateLesson(ctx, lesson); err != nil {
		return nil, fmt.Errorf("create lesson failed: %w", err)
	}

	return lesson, nil
}

func (s *courseService) UpdateLesson(ctx context.Context, lesson *domain.Lesson) error {
	if err := s.courseRepository.UpdateLesson(ctx, lesson); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update lesson failed: %w", err)
	}

	return nil
}

func (s *courseService) RemoveLesson(ctx context.Context, sectionID, id uuid.UUID) error {
	if err := s.courseRepository.DeleteLesson(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete lesson failed: %w", err)
	}

	siblings, err := s.courseRepository.ListLessons(ctx, sectionID)
	if err != nil {
		return fmt.Errorf("list lessons failed: %w", err)
	}

	return s.courseRepository.SetLessonPositions(ctx, sectionID, idsOfLessons(siblings))
}

func (s *courseService) ReorderLessons(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	siblings, err := s.courseRepository.ListLessons(ctx, sectionID)
	if err != nil {
		return fmt.Errorf("list lessons failed: %w", err)
	}

	if !sameIDSet(idsOfLessons(siblings), orderedIDs) {
		return ErrOrderMismatch
	}

	return s.courseRepository.SetLessonPositions(ctx, sectionID, orderedIDs)
}

func idsOfModules(modules []*domain.CourseModule) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ID)
	}
	return ids
}

func idsOfSections(sections []*domain.CourseSection) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID)
	}
	return ids
}

func idsOfLessons(lessons []*domain.Lesson) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(lessons))
	for _, l := range lessons {
		ids = append(ids, l.ID)
	}
	return ids
}

// sameIDSet reports whether both slices contain exactly the same ids,
// ignoring order.
func sameIDSet(existing, proposed []uuid.UUID) bool {
	if len(existing) != len(proposed) {
		return false
	}

	seen := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		seen[id] = struct{}{}
	}

	for _, id := range proposed {
		if _, ok := seen[id]; !ok {
			return false
		}
		delete(seen, id)
	}

	return len(seen) == 0
}
