package repository

import "testing"

func TestCreateComment(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, owner, "sunset")

	comment, err := CreateComment(db, post.ID, "lovely light", alice)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if comment.PostID != post.ID || comment.UserID != alice.ID {
		t.Fatalf("unexpected comment: %+v", comment)
	}

	_, err = CreateComment(db, post.ID, "   ", alice)
	wantKind(t, err, KindValidation)

	_, err = CreateComment(db, post.ID+100, "orphan", alice)
	wantKind(t, err, KindNotFound)
}

func TestUpdateComment(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, owner, "sunset")

	comment, err := CreateComment(db, post.ID, "first take", alice)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	updated, err := UpdateComment(db, comment.ID, "second take", alice)
	if err != nil {
		t.Fatalf("update comment: %v", err)
	}
	if updated.Text != "second take" {
		t.Fatalf("text = %q", updated.Text)
	}

	_, err = UpdateComment(db, comment.ID, "hijack", bob)
	wantKind(t, err, KindForbidden)

	_, err = UpdateComment(db, comment.ID, "  ", alice)
	wantKind(t, err, KindValidation)

	_, err = UpdateComment(db, comment.ID+100, "ghost", alice)
	wantKind(t, err, KindNotFound)
}

func TestDeleteComment(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, owner, "sunset")

	comment, err := CreateComment(db, post.ID, "going away", alice)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if _, err := DeleteComment(db, comment.ID); err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	_, err = GetComment(db, comment.ID)
	wantKind(t, err, KindNotFound)

	_, err = DeleteComment(db, comment.ID)
	wantKind(t, err, KindNotFound)
}

func TestPostComments(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, owner, "sunset")
	other := seedPost(t, db, owner, "other")

	for _, text := range []string{"one", "two", "three"} {
		if _, err := CreateComment(db, post.ID, text, alice); err != nil {
			t.Fatalf("comment %q: %v", text, err)
		}
	}
	if _, err := CreateComment(db, other.ID, "elsewhere", alice); err != nil {
		t.Fatalf("comment on other: %v", err)
	}

	comments, err := PostComments(db, post.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(comments))
	}
	// oldest first
	if comments[0].Text != "one" || comments[2].Text != "three" {
		t.Fatalf("comment order: %+v", comments)
	}
	if comments[0].User.Username != "alice" {
		t.Fatalf("author not preloaded: %+v", comments[0].User)
	}
}
