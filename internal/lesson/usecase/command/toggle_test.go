package command

import (
	"context"
	"sync"
	"testing"

	"github.com/mahir/lifelessons/internal/lesson/domain"
)

// fakeLessonRepo is an in-memory repository honoring the toggle contract:
// membership and counter always change together under one lock.
type fakeLessonRepo struct {
	mu        sync.Mutex
	lessons   map[uint]*domain.Lesson
	favorites map[uint]map[string]bool
}

func newFakeLessonRepo(lessons ...*domain.Lesson) *fakeLessonRepo {
	r := &fakeLessonRepo{
		lessons:   make(map[uint]*domain.Lesson),
		favorites: make(map[uint]map[string]bool),
	}
	for _, l := range lessons {
		r.lessons[l.ID] = l
		r.favorites[l.ID] = make(map[string]bool)
	}
	return r
}

func (r *fakeLessonRepo) Create(ctx context.Context, lesson *domain.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lesson.ID = uint(len(r.lessons) + 1)
	r.lessons[lesson.ID] = lesson
	r.favorites[lesson.ID] = make(map[string]bool)
	return nil
}

func (r *fakeLessonRepo) FindByID(ctx context.Context, id uint) (*domain.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lessons[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

func (r *fakeLessonRepo) FindAll(ctx context.Context, limit, offset int) ([]domain.Lesson, error) {
	return nil, nil
}

func (r *fakeLessonRepo) FindByIDs(ctx context.Context, ids []uint) ([]domain.Lesson, error) {
	return nil, nil
}

func (r *fakeLessonRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lessons[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.lessons, id)
	delete(r.favorites, id)
	return nil
}

func (r *fakeLessonRepo) ToggleLike(ctx context.Context, lessonID uint, subject string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lessons[lessonID]
	if !ok {
		return false, domain.ErrNotFound
	}
	for i, s := range l.Likes {
		if s == subject {
			l.Likes = append(l.Likes[:i], l.Likes[i+1:]...)
			l.LikesCount--
			return false, nil
		}
	}
	l.Likes = append(l.Likes, subject)
	l.LikesCount++
	return true, nil
}

func (r *fakeLessonRepo) ToggleFavorite(ctx context.Context, lessonID uint, subject string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lessons[lessonID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if r.favorites[lessonID][subject] {
		delete(r.favorites[lessonID], subject)
		l.FavoritesCount--
		return false, nil
	}
	r.favorites[lessonID][subject] = true
	l.FavoritesCount++
	return true, nil
}

func (r *fakeLessonRepo) IsFavorited(ctx context.Context, lessonID uint, subject string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.favorites[lessonID][subject], nil
}

func (r *fakeLessonRepo) FindFavoritesBySubject(ctx context.Context, subject string, limit, offset int) ([]domain.Lesson, error) {
	return nil, nil
}

func (r *fakeLessonRepo) FindCounterDrift(ctx context.Context) ([]domain.CounterDrift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var drifts []domain.CounterDrift
	for id, l := range r.lessons {
		if l.LikesCount != len(l.Likes) || l.FavoritesCount != len(r.favorites[id]) {
			drifts = append(drifts, domain.CounterDrift{
				LessonID:        id,
				LikesCount:      l.LikesCount,
				ActualLikes:     len(l.Likes),
				FavoritesCount:  l.FavoritesCount,
				ActualFavorites: len(r.favorites[id]),
			})
		}
	}
	return drifts, nil
}

func TestToggleLike_FlipsStateAndCounter(t *testing.T) {
	lesson := &domain.Lesson{ID: 1, Likes: []string{}}
	repo := newFakeLessonRepo(lesson)
	h := NewToggleLikeHandler(repo)

	liked, err := h.Handle(context.Background(), ToggleLikeCommand{LessonID: 1, Subject: "alice"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if !liked {
		t.Error("first toggle should like")
	}
	if lesson.LikesCount != 1 {
		t.Errorf("likes count = %d, want 1", lesson.LikesCount)
	}

	liked, err = h.Handle(context.Background(), ToggleLikeCommand{LessonID: 1, Subject: "alice"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if liked {
		t.Error("second toggle should unlike")
	}
	if lesson.LikesCount != 0 {
		t.Errorf("likes count = %d, want 0", lesson.LikesCount)
	}
}

func TestToggleLike_CounterMatchesMembershipAfterAnySequence(t *testing.T) {
	lesson := &domain.Lesson{ID: 1, Likes: []string{}}
	repo := newFakeLessonRepo(lesson)
	h := NewToggleLikeHandler(repo)

	subjects := []string{"alice", "bob", "alice", "carol", "bob", "alice", "dave"}
	for _, s := range subjects {
		if _, err := h.Handle(context.Background(), ToggleLikeCommand{LessonID: 1, Subject: s}); err != nil {
			t.Fatalf("toggle for %s failed: %v", s, err)
		}
	}

	if lesson.LikesCount != len(lesson.Likes) {
		t.Errorf("likes count %d drifted from membership %d", lesson.LikesCount, len(lesson.Likes))
	}
	drifts, _ := repo.FindCounterDrift(context.Background())
	if len(drifts) != 0 {
		t.Errorf("expected no drift, got %+v", drifts)
	}
}

func TestToggleFavorite_FlipsStateAndCounter(t *testing.T) {
	lesson := &domain.Lesson{ID: 1, Likes: []string{}}
	repo := newFakeLessonRepo(lesson)
	h := NewToggleFavoriteHandler(repo)

	fav, err := h.Handle(context.Background(), ToggleFavoriteCommand{LessonID: 1, Subject: "alice"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if !fav {
		t.Error("first toggle should favorite")
	}
	if lesson.FavoritesCount != 1 {
		t.Errorf("favorites count = %d, want 1", lesson.FavoritesCount)
	}

	fav, err = h.Handle(context.Background(), ToggleFavoriteCommand{LessonID: 1, Subject: "alice"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if fav {
		t.Error("second toggle should unfavorite")
	}
	if lesson.FavoritesCount != 0 {
		t.Errorf("favorites count = %d, want 0", lesson.FavoritesCount)
	}
}

func TestToggleFavorite_ConcurrentTogglesNeverDriftCounter(t *testing.T) {
	lesson := &domain.Lesson{ID: 1, Likes: []string{}}
	repo := newFakeLessonRepo(lesson)
	h := NewToggleFavoriteHandler(repo)

	subjects := []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8"}
	var wg sync.WaitGroup
	for _, s := range subjects {
		wg.Add(1)
		go func(subject string) {
			defer wg.Done()
			// Each subject toggles three times: final state favorited
			for i := 0; i < 3; i++ {
				if _, err := h.Handle(context.Background(), ToggleFavoriteCommand{LessonID: 1, Subject: subject}); err != nil {
					t.Errorf("toggle failed: %v", err)
				}
			}
		}(s)
	}
	wg.Wait()

	if lesson.FavoritesCount != len(subjects) {
		t.Errorf("favorites count = %d, want %d", lesson.FavoritesCount, len(subjects))
	}
	drifts, _ := repo.FindCounterDrift(context.Background())
	if len(drifts) != 0 {
		t.Errorf("expected no drift, got %+v", drifts)
	}
}

func TestToggle_UnknownLesson(t *testing.T) {
	repo := newFakeLessonRepo()

	if _, err := NewToggleLikeHandler(repo).Handle(context.Background(), ToggleLikeCommand{LessonID: 9, Subject: "alice"}); err == nil {
		t.Error("expected error for unknown lesson on like toggle")
	}
	if _, err := NewToggleFavoriteHandler(repo).Handle(context.Background(), ToggleFavoriteCommand{LessonID: 9, Subject: "alice"}); err == nil {
		t.Error("expected error for unknown lesson on favorite toggle")
	}
}

func TestToggle_Validation(t *testing.T) {
	repo := newFakeLessonRepo()

	if _, err := NewToggleLikeHandler(repo).Handle(context.Background(), ToggleLikeCommand{LessonID: 1}); err == nil {
		t.Error("expected error for missing subject")
	}
	if _, err := NewToggleFavoriteHandler(repo).Handle(context.Background(), ToggleFavoriteCommand{Subject: "alice"}); err == nil {
		t.Error("expected error for missing lesson id")
	}
}
