package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderacademy/backoffice/internal/domain"
)

// fakeCourseStore keeps the course tree in memory. List methods return
// children sorted by position, matching the repository's ORDER BY.
type fakeCourseStore struct {
	courses  map[uuid.UUID]*domain.Course
	modules  map[uuid.UUID]*domain.CourseModule
	sections map[uuid.UUID]*domain.CourseSection
	lessons  map[uuid.UUID]*domain.Lesson
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		courses:  make(map[uuid.UUID]*domain.Course),
		modules:  make(map[uuid.UUID]*domain.CourseModule),
		sections: make(map[uuid.UUID]*domain.CourseSection),
		lessons:  make(map[uuid.UUID]*domain.Lesson),
	}
}

func (f *fakeCourseStore) ListCourses(_ context.Context) ([]*domain.Course, error) {
	out := make([]*domain.Course, 0, len(f.courses))
	for _, c := range f.courses {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCourseStore) GetCourse(_ context.Context, id uuid.UUID) (*domain.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeCourseStore) CreateCourse(_ context.Context, course *domain.Course) error {
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) UpdateCourse(_ context.Context, course *domain.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return domain.ErrNoRowsAffected
	}
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) DeleteCourse(_ context.Context, id uuid.UUID) error {
	if _, ok := f.courses[id]; !ok {
		return domain.ErrNoRowsAffected
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseStore) ListModules(_ context.Context, courseID uuid.UUID) ([]*domain.CourseModule, error) {
	var out []*domain.CourseModule
	for _, m := range f.modules {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeCourseStore) CreateModule(_ context.Context, module *domain.CourseModule) error {
	f.modules[module.ID] = module
	return nil
}

func (f *fakeCourseStore) RenameModule(_ context.Context, id uuid.UUID, title string) error {
	m, ok := f.modules[id]
	if !ok {
		return domain.ErrNoRowsAffected
	}
	m.Title = title
	return nil
}

func (f *fakeCourseStore) DeleteModule(_ context.Context, id uuid.UUID) error {
	if _, ok := f.modules[id]; !ok {
		return domain.ErrNoRowsAffected
	}
	delete(f.modules, id)
	return nil
}

func (f *fakeCourseStore) SetModulePositions(_ context.Context, courseID uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		if m, ok := f.modules[id]; ok && m.CourseID == courseID {
			m.Position = i
		}
	}
	return nil
}

func (f *fakeCourseStore) ListSections(_ context.Context, moduleID uuid.UUID) ([]*domain.CourseSection, error) {
	var out []*domain.CourseSection
	for _, s := range f.sections {
		if s.ModuleID == moduleID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeCourseStore) CreateSection(_ context.Context, section *domain.CourseSection) error {
	f.sections[section.ID] = section
	return nil
}

func (f *fakeCourseStore) RenameSection(_ context.Context, id uuid.UUID, title string) error {
	s, ok := f.sections[id]
	if !ok {
		return domain.ErrNoRowsAffected
	}
	s.Title = title
	return nil
}

func (f *fakeCourseStore) DeleteSection(_ context.Context, id uuid.UUID) error {
	if _, ok := f.sections[id]; !ok {
		return domain.ErrNoRowsAffected
	}
	delete(f.sections, id)
	return nil
}

func (f *fakeCourseStore) SetSectionPositions(_ context.Context, moduleID uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		if s, ok := f.sections[id]; ok && s.ModuleID == moduleID {
			s.Position = i
		}
	}
	return nil
}

func (f *fakeCourseStore) ListLessons(_ context.Context, sectionID uuid.UUID) ([]*domain.Lesson, error) {
	var out []*domain.Lesson
	for _, l := range f.lessons {
		if l.SectionID == sectionID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeCourseStore) CreateLesson(_ context.Context, lesson *domain.Lesson) error {
	f.lessons[lesson.ID] = lesson
	return nil
}

func (f *fakeCourseStore) UpdateLesson(_ context.Context, lesson *domain.Lesson) error {
	l, ok := f.lessons[lesson.ID]
	if !ok {
		return domain.ErrNoRowsAffected
	}
	l.Title = lesson.Title
	l.VideoURL = lesson.VideoURL
	l.Content = lesson.Content
	return nil
}

func (f *fakeCourseStore) DeleteLesson(_ context.Context, id uuid.UUID) error {
	if _, ok := f.lessons[id]; !ok {
		return domain.ErrNoRowsAffected
	}
	delete(f.lessons, id)
	return nil
}

func (f *fakeCourseStore) SetLessonPositions(_ context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		if l, ok := f.lessons[id]; ok && l.SectionID == sectionID {
			l.Position = i
		}
	}
	return nil
}

func TestAddModuleAppendsAtEnd(t *testing.T) {
	store := newFakeCourseStore()
	svc := newCourseService(store)
	ctx := context.Background()

	courseID := uuid.New()

	first, err := svc.AddModule(ctx, courseID, "Basics")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)

	second, err := svc.AddModule(ctx, courseID, "Risk Management")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)

	third, err := svc.AddModule(ctx, courseID, "Psychology")
	require.NoError(t, err)
	assert.Equal(t, 2, third.Position)
}

func TestRemoveModuleReindexesSiblings(t *testing.T) {
	store := newFakeCourseStore()
	svc := newCourseService(store)
	ctx := context.Background()

	courseID := uuid.New()
	var modules []*domain.CourseModule
	for _, title := range []string{"A", "B", "C"} {
		m, err := svc.AddModule(ctx, courseID, title)
		require.NoError(t, err)
		modules = append(modules, m)
	}

	require.NoError(t, svc.RemoveModule(ctx, courseID, modules[1].ID))

	remaining, err := svc.ListModules(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)

	// Positions stay contiguous after the middle module is gone.
	assert.Equal(t, "A", remaining[0].Title)
	assert.Equal(t, 0, remaining[0].Position)
	assert.Equal(t, "C", remaining[1].Title)
	assert.Equal(t, 1, remaining[1].Position)
}

func TestRemoveModuleNotFound(t *testing.T) {
	store := newFakeCourseStore()
	svc := newCourseService(store)

	err := svc.RemoveModule(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReorderModules(t *testing.T) {
	store := newFakeCourseStore()
	svc := newCourseService(store)
	ctx := context.Background()

	courseID := uuid.New()
	var ids []uuid.UUID
	for _, title := range []string{"A", "B", "C"} {
		m, err := svc.AddModule(ctx, courseID, title)
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}

	require.NoError(t, svc.ReorderModules(ctx, courseID, []uuid.UUID{ids[2], ids[0], ids[1]}))

	modules, err := svc.ListModules(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, "C", modules[0].Title)
	assert.Equal(t, "A", modules[1].Title)
	assert.Equal(t, "B", modules[2].Title)
}

func TestReorderModulesRejectsWrongIDSet(t *testing.T) {
	store := newFakeCourseStore()
	svc := newCourseService(store)
	ctx := context.Background()

	courseID := uuid.New()
	a, err := svc.AddModule(ctx, courseID, "A")
	require.NoError(t, err)
	b, err := svc.AddModule(ctx, courseID, "B")
	require.NoError(t, err)

	// Missing id.
	err = svc.ReorderModules(ctx, courseID, []uuid.UUID{a.ID})
	assert.ErrorIs(t, err, ErrOrderMismatch)

	// Foreign id.
	err = svc.ReorderModules(ctx, courseID, []uuid.UUID{a.ID, uuid.New()})
	assert.ErrorIs(t, err, ErrOrderMismatch)

	// Duplicate id.
	err = svc.ReorderModules(ctx, courseID, []uuid.UUID{a.ID, a.ID})
	assert.ErrorIs(t, err, ErrOrderMismatch)

	// The failed reorders must not have touched positions.
	modules, err := svc.ListModules(ctx, courseID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, modules[0].ID)
	assert.Equal(t, b.ID, modules[1].ID)
}

func TestLessonLifecycle(t *testing.T) {
	store := newFakeCourseStore()
	svc := newCourseService(store)
	ctx := context.Background()

	sectionID := uuid.New()

	intro, err := svc.AddLesson(ctx, sectionID, "Intro", "https://cdn.example.com/intro.mp4", "welcome")
	require.NoError(t, err)
	assert.Equal(t, 0, intro.Position)

	charts, err := svc.AddLesson(ctx, sectionID, "Reading Charts", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, charts.Position)

	charts.Title = "Reading Candles"
	require.NoError(t, svc.UpdateLesson(ctx, charts))

	require.NoError(t, svc.RemoveLesson(ctx, sectionID, intro.ID))

	lessons, err := svc.ListLessons(ctx, sectionID)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "Reading Candles", lessons[0].Title)
	assert.Equal(t, 0, lessons[0].Position)
}

func TestCourseCRUD(t *testing.T) {
	store := newFakeCourseStore()
	svc := newCourseService(store)
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, "Swing Trading", "swing-trading", "from zero")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, course.ID)

	got, err := svc.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "swing-trading", got.Slug)

	course.Published = true
	course.UpdatedAt = time.Now()
	require.NoError(t, svc.UpdateCourse(ctx, course))

	require.NoError(t, svc.DeleteCourse(ctx, course.ID))

	_, err = svc.GetCourse(ctx, course.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	err = svc.DeleteCourse(ctx, course.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
