package repository

import "testing"

func TestTransformedPosts(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	post := seedPost(t, db, owner, "sunset")

	missing, err := TransformedPostByURL(db, "https://img.test/none.jpg")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown url, got %+v", missing)
	}

	first, err := AddTransformedPost(db, post.ID, "https://img.test/sunset-w200.jpg")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// the URL is the dedup key, duplicates collapse onto the first row
	again, err := AddTransformedPost(db, post.ID, "https://img.test/sunset-w200.jpg")
	if err != nil {
		t.Fatalf("add duplicate: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("duplicate produced a new row: %d vs %d", again.ID, first.ID)
	}

	if _, err := AddTransformedPost(db, post.ID, "https://img.test/sunset-art.jpg"); err != nil {
		t.Fatalf("add second: %v", err)
	}

	byID, err := TransformedPostByID(db, first.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if byID.PhotoURL != first.PhotoURL {
		t.Fatalf("wrong row: %+v", byID)
	}
	_, err = TransformedPostByID(db, first.ID+100)
	wantKind(t, err, KindNotFound)

	all, err := PostTransformations(db, post.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d rows, want 2", len(all))
	}
}
