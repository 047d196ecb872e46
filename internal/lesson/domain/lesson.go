package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
)

// ErrNotFound is returned when the referenced lesson does not exist.
var ErrNotFound = errors.New("lesson not found")

// Lesson is a shared piece of content. Likes is an embedded membership set of
// identity keys; LikesCount must always equal its cardinality and
// FavoritesCount must always equal the number of Favorite rows referencing
// the lesson. Both pairs are only ever mutated through the toggle operations.
type Lesson struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Title          string         `json:"title" gorm:"not null"`
	Description    string         `json:"description"`
	Category       string         `json:"category" gorm:"index"`
	ImageURL       string         `json:"image_url"`
	IsPremium      bool           `json:"is_premium" gorm:"not null;default:false"`
	CreatorSubject string         `json:"creator_subject" gorm:"index;not null"`
	Likes          pq.StringArray `json:"likes" gorm:"type:text[];not null;default:'{}'"`
	LikesCount     int            `json:"likes_count" gorm:"not null;default:0"`
	FavoritesCount int            `json:"favorites_count" gorm:"not null;default:0"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName specifies the table name
func (Lesson) TableName() string {
	return "lessons"
}

// Favorite is the join entity between an identity and a lesson. Favorites are
// queried independently of lessons ("list my favorites"), which is why they
// are not embedded the way likes are. The composite unique index holds the
// at-most-one-per-pair invariant under concurrent toggles.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SubjectID string    `json:"subject_id" gorm:"not null;uniqueIndex:ux_favorites_subject_lesson,priority:1"`
	LessonID  uint      `json:"lesson_id" gorm:"not null;uniqueIndex:ux_favorites_subject_lesson,priority:2;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// CounterDrift is one row of the out-of-band consistency report: a lesson
// whose denormalized counters disagree with their source of truth.
type CounterDrift struct {
	LessonID        uint `json:"lesson_id"`
	LikesCount      int  `json:"likes_count"`
	ActualLikes     int  `json:"actual_likes"`
	FavoritesCount  int  `json:"favorites_count"`
	ActualFavorites int  `json:"actual_favorites"`
}

// LessonRepository defines the contract for lesson data access. ToggleLike
// and ToggleFavorite carry the atomicity requirements: the membership change
// and the counter adjustment happen as one unit per call, never as two
// independent writes.
type LessonRepository interface {
	Create(ctx context.Context, lesson *Lesson) error
	FindByID(ctx context.Context, id uint) (*Lesson, error)
	FindAll(ctx context.Context, limit, offset int) ([]Lesson, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Lesson, error)
	Delete(ctx context.Context, id uint) error

	// ToggleLike flips membership of subject in the likes set and adjusts
	// LikesCount in the same atomic update. Returns the new like state.
	ToggleLike(ctx context.Context, lessonID uint, subject string) (bool, error)
	// ToggleFavorite flips the Favorite row for (subject, lesson) and adjusts
	// FavoritesCount in the same transaction. Returns the new favorite state.
	ToggleFavorite(ctx context.Context, lessonID uint, subject string) (bool, error)
	IsFavorited(ctx context.Context, lessonID uint, subject string) (bool, error)
	FindFavoritesBySubject(ctx context.Context, subject string, limit, offset int) ([]Lesson, error)

	// FindCounterDrift reports lessons whose counters disagree with the
	// membership set / join rows. Maintenance read, never a request-path fix.
	FindCounterDrift(ctx context.Context) ([]CounterDrift, error)
}
