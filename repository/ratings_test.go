package repository

import (
	"testing"

	"gorm.io/gorm"

	"github.com/pixshare/photoshare/models"
)

func storedAverage(t *testing.T, db *gorm.DB, postID uint) float64 {
	t.Helper()
	var post models.Post
	if err := db.First(&post, postID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	return post.AverageRating
}

func TestCreateRating(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, owner, "sunset")

	rating, err := CreateRating(db, post.ID, 4, alice)
	if err != nil {
		t.Fatalf("create rating: %v", err)
	}
	if rating.PostID != post.ID || rating.UserID != alice.ID || rating.Rating != 4 {
		t.Fatalf("unexpected rating row: %+v", rating)
	}
	if got := storedAverage(t, db, post.ID); got != 4 {
		t.Fatalf("stored average = %v, want 4", got)
	}

	if _, err := CreateRating(db, post.ID, 5, bob); err != nil {
		t.Fatalf("second rating: %v", err)
	}
	if got := storedAverage(t, db, post.ID); got != 4.5 {
		t.Fatalf("stored average = %v, want 4.5", got)
	}
}

func TestCreateRatingPreconditions(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, owner, "sunset")

	_, err := CreateRating(db, post.ID+100, 3, alice)
	wantKind(t, err, KindNotFound)

	_, err = CreateRating(db, post.ID, 3, owner)
	wantKind(t, err, KindForbidden)

	if _, err := CreateRating(db, post.ID, 3, alice); err != nil {
		t.Fatalf("first rating: %v", err)
	}
	_, err = CreateRating(db, post.ID, 5, alice)
	wantKind(t, err, KindConflict)

	// the conflicting attempt must not disturb the stored average
	if got := storedAverage(t, db, post.ID); got != 3 {
		t.Fatalf("stored average = %v, want 3", got)
	}
}

func TestCreateRatingOrderOfChecks(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	post := seedPost(t, db, owner, "sunset")

	// a missing post wins over the self-rating check
	_, err := CreateRating(db, post.ID+100, 2, owner)
	wantKind(t, err, KindNotFound)
}

func TestUpdateRating(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, owner, "sunset")

	_, err := UpdateRating(db, post.ID, 4, alice)
	wantKind(t, err, KindNotFound)

	if _, err := CreateRating(db, post.ID, 2, alice); err != nil {
		t.Fatalf("create rating: %v", err)
	}
	updated, err := UpdateRating(db, post.ID, 5, alice)
	if err != nil {
		t.Fatalf("update rating: %v", err)
	}
	if updated.Rating != 5 {
		t.Fatalf("rating = %d, want 5", updated.Rating)
	}
	if got := storedAverage(t, db, post.ID); got != 5 {
		t.Fatalf("stored average = %v, want 5", got)
	}
}

func TestDeleteRating(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, owner, "sunset")

	if _, err := CreateRating(db, post.ID, 2, alice); err != nil {
		t.Fatalf("rating by alice: %v", err)
	}
	if _, err := CreateRating(db, post.ID, 4, bob); err != nil {
		t.Fatalf("rating by bob: %v", err)
	}

	if _, err := DeleteRating(db, post.ID, bob.ID); err != nil {
		t.Fatalf("delete rating: %v", err)
	}
	if got := storedAverage(t, db, post.ID); got != 2 {
		t.Fatalf("stored average = %v, want 2", got)
	}

	// removing the last rating resets the average to the unrated sentinel
	if _, err := DeleteRating(db, post.ID, alice.ID); err != nil {
		t.Fatalf("delete last rating: %v", err)
	}
	if got := storedAverage(t, db, post.ID); got != 0 {
		t.Fatalf("stored average = %v, want 0", got)
	}

	_, err := DeleteRating(db, post.ID, alice.ID)
	wantKind(t, err, KindNotFound)
	if got := storedAverage(t, db, post.ID); got != 0 {
		t.Fatalf("stored average changed by failed delete: %v", got)
	}
}

func TestAverageRating(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	post := seedPost(t, db, owner, "sunset")

	avg, rated, err := AverageRating(db, post.ID)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if rated || avg != 0 {
		t.Fatalf("unrated post: avg=%v rated=%v", avg, rated)
	}

	raters := []int{1, 2, 2}
	for i, score := range raters {
		u := seedUser(t, db, "rater"+string(rune('a'+i)))
		if _, err := CreateRating(db, post.ID, score, u); err != nil {
			t.Fatalf("rating %d: %v", i, err)
		}
	}

	avg, rated, err = AverageRating(db, post.ID)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if !rated {
		t.Fatal("post should be rated")
	}
	// 5/3 rounds to two decimals
	if avg != 1.67 {
		t.Fatalf("avg = %v, want 1.67", avg)
	}
	if got := storedAverage(t, db, post.ID); got != 1.67 {
		t.Fatalf("stored average = %v, want 1.67", got)
	}
}

func TestUserRatings(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	p1 := seedPost(t, db, owner, "one")
	p2 := seedPost(t, db, owner, "two")

	_, err := UserRatings(db, alice.ID)
	wantKind(t, err, KindNotFound)

	if _, err := CreateRating(db, p1.ID, 3, alice); err != nil {
		t.Fatalf("rating p1: %v", err)
	}
	if _, err := CreateRating(db, p2.ID, 5, alice); err != nil {
		t.Fatalf("rating p2: %v", err)
	}

	ratings, err := UserRatings(db, alice.ID)
	if err != nil {
		t.Fatalf("list ratings: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("got %d ratings, want 2", len(ratings))
	}

	single, err := UserPostRating(db, alice.ID, p2.ID)
	if err != nil {
		t.Fatalf("user post rating: %v", err)
	}
	if single.Rating != 5 {
		t.Fatalf("rating = %d, want 5", single.Rating)
	}
	_, err = UserPostRating(db, owner.ID, p2.ID)
	wantKind(t, err, KindNotFound)
}
